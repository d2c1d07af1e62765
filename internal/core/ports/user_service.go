package ports

import (
	"context"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// RegisterUserInput carries the data needed to open an account.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Whatsapp string
}

// UpdateUserInput carries the mutable profile fields.
type UpdateUserInput struct {
	Name     string
	Whatsapp string
}

// UserService defines account use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, p domain.Principal) (*domain.User, error)
	Update(ctx context.Context, p domain.Principal, userID string, input UpdateUserInput) (*domain.User, error)
	Remove(ctx context.Context, p domain.Principal, userID string) error
}
