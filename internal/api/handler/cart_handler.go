package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seunegocio/marketplace/internal/api/metrics"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry an add without applying it twice.
const HeaderIdempotencyKey = "Idempotency-Key"

type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Mine returns the caller's cart.
//
// @Summary      My cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart/me [get]
func (h *CartHandler) Mine(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	lines, err := h.service.List(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(lines))
}

// Add merges a quantity into the caller's cart. Negative quantities
// subtract; reaching zero removes the line.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string            false  "Retry key"
// @Param        body             body      addToCartRequest  true   "Item and quantity"
// @Success      200              {object}  cartResponse
// @Failure      404              {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) Add(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lines, err := h.service.Add(c.Request().Context(), ports.AddToCartInput{
		UserID:         p.ID,
		ItemID:         req.ItemID,
		Quantity:       req.Quantity,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, toCartResponse(lines))
}

// SetQuantity overwrites the quantity of a line. Zero or less removes it.
//
// @Summary      Set cart quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string              true  "Item ID"
// @Param        body    body      setQuantityRequest  true  "Quantity"
// @Success      200     {object}  cartResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/cart/items/{itemId} [patch]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req setQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lines, err := h.service.SetQuantity(c.Request().Context(), p.ID, c.Param("itemId"), *req.Quantity)
	if err != nil {
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("set_quantity").Inc()
	return c.JSON(http.StatusOK, toCartResponse(lines))
}

// Remove drops a line from the caller's cart.
//
// @Summary      Remove from cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  cartResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/cart/items/{itemId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	lines, err := h.service.Remove(c.Request().Context(), p.ID, c.Param("itemId"))
	if err != nil {
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, toCartResponse(lines))
}
