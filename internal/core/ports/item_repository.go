package ports

import (
	"context"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	// FindByIDs returns the items that still exist, keyed by ID. Unknown IDs
	// are silently absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id string) error
}
