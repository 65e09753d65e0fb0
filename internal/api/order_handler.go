package api

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
)

// OrderHistory reads persisted orders back for the status page.
type OrderHistory interface {
	GetOrderByID(ctx context.Context, orderID int) (*entity.Order, error)
	ListOrdersBySession(ctx context.Context, session string) ([]entity.Order, error)
}

type OrderHandler struct {
	orders OrderHistory
}

func NewOrderHandler(orders OrderHistory) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// ListOrders returns the session's order history --> /orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	orders, err := h.orders.ListOrdersBySession(c.Request().Context(), session)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{"orders": orders})
}

// GetOrder returns one order by its public number --> /orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	session := sessionFromContext(c)
	if session == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orders.GetOrderByID(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(404, map[string]string{"error": "Order not found"})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	if order.Session != session {
		return c.JSON(404, map[string]string{"error": "Order not found"})
	}

	return c.JSON(200, order)
}
