package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seunegocio/marketplace/internal/api/metrics"
	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

type BusinessHandler struct {
	service ports.BusinessService
}

func NewBusinessHandler(service ports.BusinessService) *BusinessHandler {
	return &BusinessHandler{service: service}
}

// Categories lists every business category with its display name.
//
// @Summary      List categories
// @Tags         businesses
// @Produce      json
// @Success      200  {array}  categoryResponse
// @Router       /v1/businesses/categories [get]
func (h *BusinessHandler) Categories(c echo.Context) error {
	out := make([]categoryResponse, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		out = append(out, categoryResponse{Type: string(cat), DisplayName: cat.DisplayName()})
	}
	return c.JSON(http.StatusOK, out)
}

// ListByCategory lists the businesses in one category.
//
// @Summary      Businesses by category
// @Tags         businesses
// @Produce      json
// @Param        category  path      string  true  "Category type"
// @Success      200       {array}   businessResponse
// @Failure      400       {object}  errorResponse
// @Router       /v1/businesses/category/{category} [get]
func (h *BusinessHandler) ListByCategory(c echo.Context) error {
	list, err := h.service.ListByCategory(c.Request().Context(), domain.Category(c.Param("category")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBusinessResponses(list))
}

// Get returns a business with its items.
//
// @Summary      Get business
// @Tags         businesses
// @Produce      json
// @Param        id   path      string  true  "Business ID"
// @Success      200  {object}  businessResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/businesses/{id} [get]
func (h *BusinessHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBusinessDetailResponse(detail))
}

// Mine lists the caller's businesses.
//
// @Summary      My businesses
// @Tags         businesses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   businessResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/businesses/me [get]
func (h *BusinessHandler) Mine(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListMine(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBusinessResponses(list))
}

// Create opens a business for the caller.
//
// @Summary      Create business
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      businessRequest  true  "Business"
// @Success      201   {object}  businessResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/businesses [post]
func (h *BusinessHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req businessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.Create(c.Request().Context(), p, toBusinessInput(req))
	if err != nil {
		return err
	}

	metrics.BusinessesCreatedTotal.WithLabelValues(string(b.Category)).Inc()
	return c.JSON(http.StatusCreated, toBusinessResponse(b))
}

// Update rewrites a business the caller owns.
//
// @Summary      Update business
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Business ID"
// @Param        body  body      businessRequest  true  "Business"
// @Success      200   {object}  businessResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/businesses/{id} [patch]
func (h *BusinessHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req businessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toBusinessInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBusinessResponse(b))
}

// Delete removes a business the caller owns, with its items.
//
// @Summary      Delete business
// @Tags         businesses
// @Security     BearerAuth
// @Param        id  path  string  true  "Business ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /v1/businesses/{id} [delete]
func (h *BusinessHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toBusinessInput(req businessRequest) ports.BusinessInput {
	return ports.BusinessInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Category:    domain.Category(req.Category),
	}
}
