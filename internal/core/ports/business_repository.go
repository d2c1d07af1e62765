package ports

import (
	"context"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// BusinessRepository defines persistence operations for businesses.
type BusinessRepository interface {
	// Create returns domain.ErrBusinessExists on a duplicate name.
	Create(ctx context.Context, b *domain.Business) (*domain.Business, error)
	FindByID(ctx context.Context, id string) (*domain.Business, error)
	// FindByIDAndOwner matches on both id and owner in a single query, so a
	// business owned by someone else is reported exactly like a missing one
	// (domain.ErrBusinessNotFound).
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Business, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Business, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
	Delete(ctx context.Context, id string) error
}
