package ports

import (
	"context"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// AddToCartInput is the DTO for an additive cart update.
type AddToCartInput struct {
	UserID   string
	ItemID   string
	Quantity int
	// IdempotencyKey is optional; a repeated key leaves the cart untouched.
	IdempotencyKey string
}

// CartService defines shopping cart use cases. Every operation returns the
// recomputed cart of the user.
type CartService interface {
	List(ctx context.Context, userID string) ([]domain.CartLineView, error)
	Add(ctx context.Context, input AddToCartInput) ([]domain.CartLineView, error)
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) ([]domain.CartLineView, error)
	Remove(ctx context.Context, userID, itemID string) ([]domain.CartLineView, error)
}
