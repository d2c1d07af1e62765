package domain

import "time"

// CartLine is one (user, item) quantity record. At most one line exists per
// pair and its quantity is always positive.
type CartLine struct {
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy implements OwnedResource.
func (l *CartLine) OwnedBy() string {
	return l.UserID
}

// CartLineView is a cart line priced against the item's current state.
type CartLineView struct {
	ItemID    string    `json:"item_id"`
	Name      string    `json:"name"`
	OfferType OfferType `json:"offer_type"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Subtotal  float64   `json:"subtotal"`
}

// PriceLine builds the view of l using the current item snapshot.
func PriceLine(l *CartLine, item *Item) CartLineView {
	return CartLineView{
		ItemID:    l.ItemID,
		Name:      item.Name,
		OfferType: item.OfferType,
		Price:     item.Price,
		Quantity:  l.Quantity,
		Subtotal:  item.Price * float64(l.Quantity),
	}
}
