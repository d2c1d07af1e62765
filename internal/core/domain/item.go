package domain

import "time"

// OfferType distinguishes physical products from services.
type OfferType string

const (
	OfferProduct OfferType = "PRODUCT"
	OfferService OfferType = "SERVICE"
)

// Valid reports whether t is a known offer type.
func (t OfferType) Valid() bool {
	return t == OfferProduct || t == OfferService
}

// Item is something a business sells.
type Item struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OfferType   OfferType `json:"offer_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedItem pairs an item with its parent business. Items carry no owner of
// their own; ownership is inherited from the business.
type OwnedItem struct {
	Item     *Item
	Business *Business
}

// OwnedBy implements OwnedResource. A business that is not the item's parent
// yields no owner so the pairing can never authorize anyone.
func (o OwnedItem) OwnedBy() string {
	if o.Item == nil || o.Business == nil || o.Item.BusinessID != o.Business.ID {
		return ""
	}
	return o.Business.OwnerID
}
