package handler

import (
	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Whatsapp:  u.Whatsapp,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toBusinessResponse(b *domain.Business) *businessResponse {
	return &businessResponse{
		ID:                  b.ID,
		OwnerID:             b.OwnerID,
		Name:                b.Name,
		Description:         b.Description,
		Address:             b.Address,
		Category:            string(b.Category),
		CategoryDisplayName: b.Category.DisplayName(),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

func toBusinessDetailResponse(d *ports.BusinessDetail) *businessResponse {
	resp := toBusinessResponse(d.Business)
	resp.Items = toItemResponses(d.Items)
	return resp
}

func toBusinessResponses(bs []*domain.Business) []*businessResponse {
	out := make([]*businessResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBusinessResponse(b))
	}
	return out
}

func toItemResponse(it *domain.Item) *itemResponse {
	return &itemResponse{
		ID:          it.ID,
		BusinessID:  it.BusinessID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		OfferType:   string(it.OfferType),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toItemResponses(items []*domain.Item) []*itemResponse {
	out := make([]*itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

func toCartResponse(lines []domain.CartLineView) cartResponse {
	if lines == nil {
		lines = []domain.CartLineView{}
	}
	var total float64
	for _, l := range lines {
		total += l.Subtotal
	}
	return cartResponse{Items: lines, Total: total}
}
