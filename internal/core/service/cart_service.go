package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

const idempotencyScopeCartAdd = "cart:add"

// CartService consolidates cart lines for a single user: additive merges,
// absolute quantity overwrites and removals, with prices read through to
// the current item on every listing.
//
// Add merges through ports.CartRepository.Increment, so concurrent adds to
// one line are all counted. SetQuantity is a plain overwrite: the last
// writer wins.
type CartService struct {
	cart   ports.CartRepository
	items  ports.ItemRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewCartService builds a CartService. idem may be nil, in which case
// idempotency keys are ignored.
func NewCartService(
	cart ports.CartRepository,
	items ports.ItemRepository,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *CartService {
	return &CartService{cart: cart, items: items, idem: idem, logger: logger}
}

// List returns the user's cart in insertion order. Lines whose item has
// disappeared are skipped.
func (s *CartService) List(ctx context.Context, userID string) ([]domain.CartLineView, error) {
	lines, err := s.cart.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []domain.CartLineView{}, nil
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}
	items, err := s.items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CartLineView, 0, len(lines))
	for _, l := range lines {
		item, ok := items[l.ItemID]
		if !ok {
			continue
		}
		views = append(views, domain.PriceLine(l, item))
	}
	return views, nil
}

// Add merges quantity into the user's line for the item. A missing line is
// created; an existing one becomes existing+quantity. A result of zero or
// less removes the line instead of storing it.
//
// With an idempotency key, a repeat of the same request returns the current
// cart without applying the delta again. The key is released when the merge
// fails so the client can retry.
func (s *CartService) Add(ctx context.Context, in ports.AddToCartInput) ([]domain.CartLineView, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if in.ItemID == "" {
		return nil, domain.Invalid("item_id", "is required")
	}
	if _, err := s.items.FindByID(ctx, in.ItemID); err != nil {
		return nil, err
	}

	claimed, replay := s.claim(ctx, in)
	if replay {
		s.logger.Debug().Str("user_id", in.UserID).Str("item_id", in.ItemID).Msg("idempotent replay skipped")
		return s.List(ctx, in.UserID)
	}

	if err := s.merge(ctx, in); err != nil {
		if claimed {
			s.release(ctx, in)
		}
		return nil, err
	}
	return s.List(ctx, in.UserID)
}

// merge applies the delta with a single atomic increment. A non-positive
// delta never creates a line.
func (s *CartService) merge(ctx context.Context, in ports.AddToCartInput) error {
	if in.Quantity <= 0 {
		if _, err := s.cart.FindLine(ctx, in.UserID, in.ItemID); err != nil {
			if errors.Is(err, domain.ErrNotInCart) {
				return nil
			}
			return err
		}
	}

	qty, err := s.cart.Increment(ctx, in.UserID, in.ItemID, in.Quantity, time.Now().UTC())
	if err != nil {
		return err
	}
	if qty <= 0 {
		return s.cart.DeleteLine(ctx, in.UserID, in.ItemID)
	}
	return nil
}

// claim reports whether the request's key was claimed now and whether it was
// already claimed by an earlier identical request. A failing store is
// logged and the add proceeds unguarded.
func (s *CartService) claim(ctx context.Context, in ports.AddToCartInput) (claimed, replay bool) {
	if in.IdempotencyKey == "" || s.idem == nil {
		return false, false
	}
	first, err := s.idem.Claim(ctx, addScope(in), in.IdempotencyKey)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", in.UserID).Msg("idempotency check failed, applying anyway")
		return false, false
	}
	return first, !first
}

func (s *CartService) release(ctx context.Context, in ports.AddToCartInput) {
	if err := s.idem.Release(context.WithoutCancel(ctx), addScope(in), in.IdempotencyKey); err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Msg("idempotency release failed")
	}
}

// addScope binds a key to the user and the exact payload, so reusing a key
// for a different item or quantity is a new request.
func addScope(in ports.AddToCartInput) string {
	return fmt.Sprintf("%s:%s:%s:%d", idempotencyScopeCartAdd, in.UserID, in.ItemID, in.Quantity)
}

// SetQuantity overwrites the line's quantity. Zero or negative behaves
// exactly like Remove.
func (s *CartService) SetQuantity(ctx context.Context, userID, itemID string, quantity int) ([]domain.CartLineView, error) {
	if quantity <= 0 {
		return s.Remove(ctx, userID, itemID)
	}

	line, err := s.cart.FindLine(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	line.Quantity = quantity
	line.UpdatedAt = time.Now().UTC()
	if err := s.cart.Save(ctx, line); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

// Remove deletes the user's line for the item.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) ([]domain.CartLineView, error) {
	if _, err := s.cart.FindLine(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.cart.DeleteLine(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}
