package ports

import (
	"context"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// BusinessInput carries the writable fields of a business.
type BusinessInput struct {
	Name        string
	Description string
	Address     string
	Category    domain.Category
}

// BusinessDetail is a business together with its catalogue.
type BusinessDetail struct {
	Business *domain.Business
	Items    []*domain.Item
}

// BusinessService defines business use cases.
type BusinessService interface {
	Create(ctx context.Context, p domain.Principal, input BusinessInput) (*domain.Business, error)
	Get(ctx context.Context, id string) (*BusinessDetail, error)
	ListMine(ctx context.Context, p domain.Principal) ([]*domain.Business, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Business, error)
	Update(ctx context.Context, p domain.Principal, id string, input BusinessInput) (*domain.Business, error)
	Remove(ctx context.Context, p domain.Principal, id string) error
}
