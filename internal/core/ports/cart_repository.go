package ports

import (
	"context"
	"time"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// CartRepository persists cart lines keyed by (user_id, item_id).
//
// Implementations must keep (user_id, item_id) unique. Increment must be a
// single atomic write so concurrent merges into one line are never lost.
type CartRepository interface {
	FindLine(ctx context.Context, userID, itemID string) (*domain.CartLine, error)
	// ListLines returns the user's lines in insertion order.
	ListLines(ctx context.Context, userID string) ([]*domain.CartLine, error)
	// Save inserts or overwrites the line for (line.UserID, line.ItemID).
	Save(ctx context.Context, line *domain.CartLine) error
	// Increment adds delta to the line's quantity, creating the line with
	// quantity delta when it does not exist, and returns the new quantity.
	Increment(ctx context.Context, userID, itemID string, delta int, at time.Time) (int, error)
	DeleteLine(ctx context.Context, userID, itemID string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteByItems(ctx context.Context, itemIDs []string) error
}

// IdempotencyStore remembers request keys for a bounded time.
type IdempotencyStore interface {
	// Claim records key and reports whether this is its first use.
	Claim(ctx context.Context, scope, key string) (bool, error)
	// Release forgets a claimed key so the request can be retried.
	Release(ctx context.Context, scope, key string) error
}
