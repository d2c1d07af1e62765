package handler

import (
	"time"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// --- User ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Whatsapp string `json:"whatsapp" validate:"omitempty,max=20"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expires_in"`
	User      *userResponse `json:"user"`
}

type updateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=100"`
	Whatsapp string `json:"whatsapp" validate:"omitempty,max=20"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Whatsapp  string    `json:"whatsapp,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Business ---

type businessRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Address     string `json:"address"     validate:"omitempty,max=255"`
	Category    string `json:"category"    validate:"required,category"`
}

type businessResponse struct {
	ID                  string          `json:"id"`
	OwnerID             string          `json:"owner_id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Address             string          `json:"address,omitempty"`
	Category            string          `json:"category"`
	CategoryDisplayName string          `json:"category_display_name"`
	Items               []*itemResponse `json:"items,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type categoryResponse struct {
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
}

// --- Item ---

type itemRequest struct {
	BusinessID  string   `json:"business_id" validate:"required"`
	Name        string   `json:"name"        validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	OfferType   string   `json:"offer_type"  validate:"required,oneof=PRODUCT SERVICE"`
}

type updateItemRequest struct {
	Name        string   `json:"name"        validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	OfferType   string   `json:"offer_type"  validate:"required,oneof=PRODUCT SERVICE"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OfferType   string    `json:"offer_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// --- Cart ---

type addToCartRequest struct {
	ItemID   string `json:"item_id"  validate:"required"`
	Quantity int    `json:"quantity" validate:"required,ne=0"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartResponse struct {
	Items []domain.CartLineView `json:"items"`
	Total float64               `json:"total"`
}
