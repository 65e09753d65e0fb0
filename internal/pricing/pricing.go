package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
)

// Business rules for checkout totals. Shipping and discount thresholds are
// strict: a subtotal of exactly 100.00 still pays shipping and exactly
// 200.00 gets no discount.
const (
	TaxRate               = 0.16
	FreeShippingThreshold = 100.0
	FlatShippingFee       = 9.99
	DiscountThreshold     = 200.0
	DiscountRate          = 0.05
)

// ParseAmount converts a display-formatted price string ("$1,299.00") into a
// numeric amount by stripping everything that is not a digit, decimal point,
// or minus sign. A string with nothing parseable left is rejected.
func ParseAmount(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, fmt.Errorf("price %q has no numeric content", s)
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q: %w", s, err)
	}

	return amount, nil
}

// LineTotal computes the extended price for one cart line.
func LineTotal(unitPrice string, quantity int) (float64, error) {
	amount, err := ParseAmount(unitPrice)
	if err != nil {
		return 0, err
	}
	return amount * float64(quantity), nil
}

// ComputeTotals derives the full monetary breakdown from the current cart
// lines. Pure: same lines in, same totals out.
func ComputeTotals(lines []entity.CartLine) (entity.OrderTotals, error) {
	var subtotal float64
	for _, line := range lines {
		lineTotal, err := LineTotal(line.UnitPrice, line.Quantity)
		if err != nil {
			return entity.OrderTotals{}, err
		}
		subtotal += lineTotal
	}

	tax := subtotal * TaxRate

	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	var discount float64
	if subtotal > DiscountThreshold {
		discount = subtotal * DiscountRate
	}

	return entity.OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal + tax + shipping - discount,
	}, nil
}
