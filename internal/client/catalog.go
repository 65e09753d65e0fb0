package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CatalogClient asks the product catalog service about stock before an order
// is accepted.
type CatalogClient struct {
	baseURL string
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{baseURL: baseURL}
}

func (c *CatalogClient) CheckStock(ctx context.Context, productID string, quantity int) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%s/stock", c.baseURL, productID), nil)
	if err != nil {
		return false, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, &APIError{Message: "product not available", HTTPStatus: resp.StatusCode}
	}

	var stockData map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&stockData); err != nil {
		return false, err
	}

	availableStock := stockData["stock"]

	return availableStock >= quantity, nil
}
