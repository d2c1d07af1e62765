package service

import (
	"context"
	"fmt"

	"github.com/seunegocio/marketplace/internal/core/ports"
)

// catalogCleaner removes records that would dangle once their parent is
// deleted: items of a business and the cart lines pointing at those items.
type catalogCleaner struct {
	businesses ports.BusinessRepository
	items      ports.ItemRepository
	cart       ports.CartRepository
}

// purgeItems drops the given items and every cart line referencing them.
func (c *catalogCleaner) purgeItems(ctx context.Context, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	if err := c.cart.DeleteByItems(ctx, itemIDs); err != nil {
		return fmt.Errorf("purge cart lines: %w", err)
	}
	for _, id := range itemIDs {
		if err := c.items.Delete(ctx, id); err != nil {
			return fmt.Errorf("purge item %s: %w", id, err)
		}
	}
	return nil
}

// purgeBusiness drops a business and its catalogue.
func (c *catalogCleaner) purgeBusiness(ctx context.Context, businessID string) error {
	items, err := c.items.ListByBusiness(ctx, businessID)
	if err != nil {
		return fmt.Errorf("list business items: %w", err)
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if err := c.purgeItems(ctx, ids); err != nil {
		return err
	}
	return c.businesses.Delete(ctx, businessID)
}

// purgeOwner drops a user's cart and every business they own.
func (c *catalogCleaner) purgeOwner(ctx context.Context, userID string) error {
	if err := c.cart.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("purge cart: %w", err)
	}
	owned, err := c.businesses.ListByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("list owned businesses: %w", err)
	}
	for _, b := range owned {
		if err := c.purgeBusiness(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}
