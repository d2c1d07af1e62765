package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

type ItemService struct {
	businesses ports.BusinessRepository
	items      ports.ItemRepository
	cleanup    *catalogCleaner
	logger     zerolog.Logger
}

func NewItemService(
	businesses ports.BusinessRepository,
	items ports.ItemRepository,
	cart ports.CartRepository,
	logger zerolog.Logger,
) *ItemService {
	return &ItemService{
		businesses: businesses,
		items:      items,
		cleanup:    &catalogCleaner{businesses: businesses, items: items, cart: cart},
		logger:     logger,
	}
}

// Create adds an item to a business the principal owns.
func (s *ItemService) Create(ctx context.Context, p domain.Principal, input ports.ItemInput) (*domain.Item, error) {
	if p.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(input.BusinessID) == "" {
		return nil, domain.Invalid("business_id", "is required")
	}
	if err := validateItem(input); err != nil {
		return nil, err
	}

	b, err := s.businesses.FindByIDAndOwner(ctx, input.BusinessID, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return nil, domain.ErrBusinessNotOwned
		}
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.items.Create(ctx, &domain.Item{
		BusinessID:  b.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		OfferType:   input.OfferType,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", created.ID).Str("business_id", b.ID).Msg("item created")
	return created, nil
}

// Get returns an item by id. Public, so a missing item is reported as
// domain.ErrItemNotFound.
func (s *ItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.items.FindByID(ctx, id)
}

func (s *ItemService) List(ctx context.Context) ([]*domain.Item, error) {
	return s.items.List(ctx)
}

// Update rewrites an item whose parent business the principal owns.
func (s *ItemService) Update(ctx context.Context, p domain.Principal, id string, input ports.ItemInput) (*domain.Item, error) {
	item, err := s.findOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := validateItem(input); err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.Price = input.Price
	item.OfferType = input.OfferType
	item.UpdatedAt = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes an item and drops it from every cart.
func (s *ItemService) Remove(ctx context.Context, p domain.Principal, id string) error {
	item, err := s.findOwned(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.cleanup.purgeItems(ctx, []string{item.ID}); err != nil {
		return err
	}
	s.logger.Info().Str("item_id", item.ID).Str("owner_id", p.ID).Msg("item removed")
	return nil
}

func (s *ItemService) findOwned(ctx context.Context, p domain.Principal, id string) (*domain.Item, error) {
	if p.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parent, err := s.businesses.FindByID(ctx, item.BusinessID)
	if err != nil && !errors.Is(err, domain.ErrBusinessNotFound) {
		return nil, err
	}
	if err := domain.AuthorizeItem(p, item, parent); err != nil {
		return nil, err
	}
	return item, nil
}

func validateItem(in ports.ItemInput) error {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return domain.Invalid("name", "is required")
	case len(name) > maxNameLength:
		return domain.Invalid("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	case strings.TrimSpace(in.Description) == "":
		return domain.Invalid("description", "is required")
	case in.Price < 0:
		return domain.Invalid("price", "must be zero or positive")
	case !in.OfferType.Valid():
		return domain.Invalid("offer_type", "must be PRODUCT or SERVICE")
	}
	return nil
}
