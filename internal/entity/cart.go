package entity

// CartLine is one product-quantity pairing in a session cart. UnitPrice keeps
// the display-formatted string the catalog serves (e.g. "$1,299.00"); the
// pricing package parses it for arithmetic.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Processor string `json:"processor,omitempty"`
	RAM       string `json:"ram,omitempty"`
	Storage   string `json:"storage,omitempty"`
	Category  string `json:"category,omitempty"`
	InStock   bool   `json:"in_stock"`
}

// OrderTotals is the monetary breakdown derived from a cart's current lines.
// It is never stored; it is recomputed from the line sequence on every read.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}
