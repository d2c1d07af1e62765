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

const maxNameLength = 100

type BusinessService struct {
	users      ports.UserRepository
	businesses ports.BusinessRepository
	items      ports.ItemRepository
	cleanup    *catalogCleaner
	logger     zerolog.Logger
}

func NewBusinessService(
	users ports.UserRepository,
	businesses ports.BusinessRepository,
	items ports.ItemRepository,
	cart ports.CartRepository,
	logger zerolog.Logger,
) *BusinessService {
	return &BusinessService{
		users:      users,
		businesses: businesses,
		items:      items,
		cleanup:    &catalogCleaner{businesses: businesses, items: items, cart: cart},
		logger:     logger,
	}
}

// Create opens a business owned by the principal. A buyer opening their
// first business is promoted to seller; later creations leave the role
// untouched.
func (s *BusinessService) Create(ctx context.Context, p domain.Principal, input ports.BusinessInput) (*domain.Business, error) {
	if p.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateBusiness(input); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.businesses.Create(ctx, &domain.Business{
		OwnerID:     owner.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Address:     input.Address,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if next, promoted := owner.Role.PromoteIfBuyer(); promoted {
		if err := s.users.UpdateRole(ctx, owner.ID, next); err != nil {
			return nil, fmt.Errorf("promote owner: %w", err)
		}
		s.logger.Info().Str("user_id", owner.ID).Msg("buyer promoted to seller")
	}

	s.logger.Info().Str("business_id", created.ID).Str("owner_id", owner.ID).Msg("business created")
	return created, nil
}

// Get returns a business and its items. Public.
func (s *BusinessService) Get(ctx context.Context, id string) (*ports.BusinessDetail, error) {
	b, err := s.businesses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByBusiness(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &ports.BusinessDetail{Business: b, Items: items}, nil
}

func (s *BusinessService) ListMine(ctx context.Context, p domain.Principal) ([]*domain.Business, error) {
	if p.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	return s.businesses.ListByOwner(ctx, p.ID)
}

func (s *BusinessService) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Business, error) {
	if !category.Valid() {
		return nil, domain.Invalid("category", "is not a known category")
	}
	return s.businesses.ListByCategory(ctx, category)
}

// Update rewrites a business owned by the principal. A business that does
// not exist and one owned by someone else produce the same error.
func (s *BusinessService) Update(ctx context.Context, p domain.Principal, id string, input ports.BusinessInput) (*domain.Business, error) {
	b, err := s.findOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := validateBusiness(input); err != nil {
		return nil, err
	}

	b.Name = strings.TrimSpace(input.Name)
	b.Description = input.Description
	b.Address = input.Address
	b.Category = input.Category
	b.UpdatedAt = time.Now().UTC()

	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Remove deletes a business owned by the principal along with its items.
func (s *BusinessService) Remove(ctx context.Context, p domain.Principal, id string) error {
	b, err := s.findOwned(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.cleanup.purgeBusiness(ctx, b.ID); err != nil {
		return err
	}
	s.logger.Info().Str("business_id", b.ID).Str("owner_id", p.ID).Msg("business removed")
	return nil
}

// findOwned performs the owner-scoped lookup and re-checks ownership on the
// returned record.
func (s *BusinessService) findOwned(ctx context.Context, p domain.Principal, id string) (*domain.Business, error) {
	if p.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	b, err := s.businesses.FindByIDAndOwner(ctx, id, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return nil, domain.ErrBusinessNotOwned
		}
		return nil, err
	}
	if err := domain.AuthorizeBusiness(p, b); err != nil {
		return nil, domain.ErrBusinessNotOwned
	}
	return b, nil
}

func validateBusiness(in ports.BusinessInput) error {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return domain.Invalid("name", "is required")
	case len(name) > maxNameLength:
		return domain.Invalid("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	case strings.TrimSpace(in.Description) == "":
		return domain.Invalid("description", "is required")
	case !in.Category.Valid():
		return domain.Invalid("category", "is not a known category")
	}
	return nil
}
