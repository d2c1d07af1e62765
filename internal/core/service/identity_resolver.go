package service

import (
	"context"

	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

// IdentityResolver looks up the user behind a token subject.
type IdentityResolver struct {
	users ports.UserRepository
}

func NewIdentityResolver(users ports.UserRepository) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// Resolve returns the principal for subject with its current role. A user
// deleted after the token was issued yields domain.ErrUserNotFound.
func (r *IdentityResolver) Resolve(ctx context.Context, subject string) (domain.Principal, error) {
	user, err := r.users.FindByID(ctx, subject)
	if err != nil {
		return domain.Anonymous, err
	}
	return domain.PrincipalOf(user), nil
}
