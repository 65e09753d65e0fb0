package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
	"github.com/cristianlarad/ARCADE-MAX/internal/service"
)

type CartHandler struct {
	cartService     *service.CartService
	checkoutService *service.CheckoutService
}

func NewCartHandler(cartService *service.CartService, checkoutService *service.CheckoutService) *CartHandler {
	return &CartHandler{cartService: cartService, checkoutService: checkoutService}
}

// GetCart returns the session's lines with freshly computed totals.
func (h *CartHandler) GetCart(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	lines, totals, err := h.cartService.Cart(session)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{
		"items":  lines,
		"totals": totals,
	})
}

func (h *CartHandler) AddItem(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	item := entity.CartLine{}
	if err := c.Bind(&item); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.cartService.AddItem(session, item); err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}

	return h.GetCart(c)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	body := struct {
		Quantity int `json:"quantity"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.cartService.UpdateQuantity(session, c.Param("id"), body.Quantity); err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}

	return h.GetCart(c)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	h.cartService.RemoveItem(session, c.Param("id"))
	return h.GetCart(c)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	h.cartService.Clear(session)
	return c.JSON(200, map[string]string{"message": "Cart cleared"})
}

// Checkout submits the cart. The Idempotent-Key header protects against
// double submission; the cart empties only when the order is accepted.
func (h *CartHandler) Checkout(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	req := service.CheckoutRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	req.IdempotentKey = c.Request().Header.Get("Idempotent-Key")

	order, err := h.checkoutService.Checkout(c.Request().Context(), session, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			return c.JSON(400, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateCheckout):
			return c.JSON(409, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrOutOfStock):
			return c.JSON(409, map[string]string{"error": err.Error()})
		default:
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(200, map[string]interface{}{
		"message": "Pedido creado exitosamente",
		"order":   order,
	})
}
