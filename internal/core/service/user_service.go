package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

// UserService implements registration, login and self-service profile
// management.
type UserService struct {
	users   ports.UserRepository
	cleanup *catalogCleaner
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	logger  zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	businesses ports.BusinessRepository,
	items ports.ItemRepository,
	cart ports.CartRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:   users,
		cleanup: &catalogCleaner{businesses: businesses, items: items, cart: cart},
		hasher:  hasher,
		tokens:  tokens,
		logger:  logger,
	}
}

// Register creates a buyer account.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Invalid("name", "is required")
	}
	if email == "" {
		return nil, domain.Invalid("email", "is required")
	}
	if len(input.Password) < 6 {
		return nil, domain.Invalid("password", "must be at least 6 characters")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Whatsapp:     input.Whatsapp,
		PasswordHash: hash,
		Role:         domain.RoleBuyer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password are both reported as domain.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	issued, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.LoginResult{
		Token:            issued.Value,
		ExpiresInSeconds: int64(s.tokens.TTL() / time.Second),
		User:             user,
	}, nil
}

// Me returns the account of the acting principal.
func (s *UserService) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	if p.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.FindByID(ctx, p.ID)
}

// Update changes the profile of userID, which must be the principal itself.
func (s *UserService) Update(ctx context.Context, p domain.Principal, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.selfOnly(ctx, p, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Invalid("name", "is required")
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Whatsapp = input.Whatsapp
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Remove deletes the principal's own account together with its cart and
// every business it owns.
func (s *UserService) Remove(ctx context.Context, p domain.Principal, userID string) error {
	user, err := s.selfOnly(ctx, p, userID)
	if err != nil {
		return err
	}

	if err := s.cleanup.purgeOwner(ctx, user.ID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user removed")
	return nil
}

func (s *UserService) selfOnly(ctx context.Context, p domain.Principal, userID string) (*domain.User, error) {
	if p.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	// Check against the requested id before touching storage so a foreign
	// id is denied whether or not that account exists.
	if err := domain.AuthorizeUser(p, &domain.User{ID: userID}); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}
