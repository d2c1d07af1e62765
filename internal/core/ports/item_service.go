package ports

import (
	"context"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// ItemInput carries the writable fields of an item. BusinessID is only
// honoured on creation.
type ItemInput struct {
	BusinessID  string
	Name        string
	Description string
	Price       float64
	OfferType   domain.OfferType
}

// ItemService defines catalogue use cases.
type ItemService interface {
	Create(ctx context.Context, p domain.Principal, input ItemInput) (*domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	Update(ctx context.Context, p domain.Principal, id string, input ItemInput) (*domain.Item, error)
	Remove(ctx context.Context, p domain.Principal, id string) error
}
