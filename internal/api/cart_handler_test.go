package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianlarad/ARCADE-MAX/internal/repository"
	"github.com/cristianlarad/ARCADE-MAX/internal/service"
)

func newTestContext(t *testing.T, method, target, body, session string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if session != "" {
		c.Set("user", &jwt.Token{Claims: &JwtCustomClaims{Email: session}})
	}
	return c, rec
}

func newCartHandler() *CartHandler {
	return NewCartHandler(service.NewCartService(repository.NewCartStore()), nil)
}

func TestCartHandler_Unauthorized(t *testing.T) {
	h := newCartHandler()

	c, rec := newTestContext(t, http.MethodGet, "/cart", "", "")
	require.NoError(t, h.GetCart(c))
	assert.Equal(t, 401, rec.Code)
}

func TestCartHandler_AddItemAndGetCart(t *testing.T) {
	h := newCartHandler()

	body := `{"product_id":"L1","name":"Nebula 14","unit_price":"$150.00","quantity":1}`
	c, rec := newTestContext(t, http.MethodPost, "/cart/items", body, "ana@example.com")
	require.NoError(t, h.AddItem(c))
	require.Equal(t, 200, rec.Code)

	var resp struct {
		Items []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
		Totals struct {
			Subtotal float64 `json:"subtotal"`
			Total    float64 `json:"total"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "L1", resp.Items[0].ProductID)
	assert.InDelta(t, 150.00, resp.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 174.00, resp.Totals.Total, 1e-9)
}

func TestCartHandler_AddItemRejectsBadQuantity(t *testing.T) {
	h := newCartHandler()

	body := `{"product_id":"L1","unit_price":"$150.00","quantity":0}`
	c, rec := newTestContext(t, http.MethodPost, "/cart/items", body, "ana@example.com")
	require.NoError(t, h.AddItem(c))
	assert.Equal(t, 400, rec.Code)
}

func TestCartHandler_SessionsDoNotShareCarts(t *testing.T) {
	h := newCartHandler()

	body := `{"product_id":"L1","unit_price":"$10.00","quantity":1}`
	c, rec := newTestContext(t, http.MethodPost, "/cart/items", body, "ana@example.com")
	require.NoError(t, h.AddItem(c))
	require.Equal(t, 200, rec.Code)

	c, rec = newTestContext(t, http.MethodGet, "/cart", "", "ben@example.com")
	require.NoError(t, h.GetCart(c))
	require.Equal(t, 200, rec.Code)

	var resp struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestBoardHandler_GetStatusStyles(t *testing.T) {
	h := NewBoardHandler(nil)

	c, rec := newTestContext(t, http.MethodGet, "/status/styles", "", "")
	require.NoError(t, h.GetStatusStyles(c))
	require.Equal(t, 200, rec.Code)

	var styles map[string]struct {
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &styles))
	assert.Len(t, styles, 4)
	assert.Equal(t, "Pendiente", styles["pending"].Label)
}
