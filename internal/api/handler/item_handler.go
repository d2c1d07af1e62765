package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List returns every item.
//
// @Summary      List items
// @Tags         items
// @Produce      json
// @Success      200  {array}  itemResponse
// @Router       /v1/items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponses(items))
}

// Get returns a single item.
//
// @Summary      Get item
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  itemResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Create adds an item to a business the caller owns.
//
// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      itemRequest  true  "Item"
// @Success      201   {object}  itemResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), p, ports.ItemInput{
		BusinessID:  req.BusinessID,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		OfferType:   domain.OfferType(req.OfferType),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// Update rewrites an item of a business the caller owns.
//
// @Summary      Update item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Item ID"
// @Param        body  body      updateItemRequest  true  "Item"
// @Success      200   {object}  itemResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/items/{id} [patch]
func (h *ItemHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), p, c.Param("id"), ports.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		OfferType:   domain.OfferType(req.OfferType),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete removes an item and drops it from every cart.
//
// @Summary      Delete item
// @Tags         items
// @Security     BearerAuth
// @Param        id  path  string  true  "Item ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
