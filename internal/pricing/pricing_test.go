package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$1,299.00", 1299.00},
		{"$150.00", 150.00},
		{"9.99", 9.99},
		{"USD 42", 42},
		{"-5.50", -5.50},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
	}
}

func TestParseAmount_Malformed(t *testing.T) {
	for _, in := range []string{"", "free", "$", "1.2.3", "--5"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q should be rejected", in)
	}
}

func TestComputeTotals_Formulas(t *testing.T) {
	lines := []entity.CartLine{
		{ProductID: "L1", UnitPrice: "$150.00", Quantity: 1},
	}

	totals, err := ComputeTotals(lines)
	require.NoError(t, err)
	assert.InDelta(t, 150.00, totals.Subtotal, 1e-9)
	assert.InDelta(t, 24.00, totals.Tax, 1e-9)
	assert.InDelta(t, 0, totals.Shipping, 1e-9)
	assert.InDelta(t, 0, totals.Discount, 1e-9)
	assert.InDelta(t, 174.00, totals.Total, 1e-9)

	// Same line at quantity 2 crosses the discount threshold.
	lines[0].Quantity = 2
	totals, err = ComputeTotals(lines)
	require.NoError(t, err)
	assert.InDelta(t, 300.00, totals.Subtotal, 1e-9)
	assert.InDelta(t, 48.00, totals.Tax, 1e-9)
	assert.InDelta(t, 0, totals.Shipping, 1e-9)
	assert.InDelta(t, 15.00, totals.Discount, 1e-9)
	assert.InDelta(t, 333.00, totals.Total, 1e-9)
}

func TestComputeTotals_Pure(t *testing.T) {
	lines := []entity.CartLine{
		{ProductID: "L1", UnitPrice: "$99.50", Quantity: 2},
		{ProductID: "L2", UnitPrice: "$10.00", Quantity: 1},
	}

	first, err := ComputeTotals(lines)
	require.NoError(t, err)
	second, err := ComputeTotals(lines)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeTotals_ShippingThreshold(t *testing.T) {
	totals, err := ComputeTotals([]entity.CartLine{{UnitPrice: "$100.00", Quantity: 1}})
	require.NoError(t, err)
	assert.InDelta(t, FlatShippingFee, totals.Shipping, 1e-9, "subtotal of exactly 100.00 still pays shipping")

	totals, err = ComputeTotals([]entity.CartLine{{UnitPrice: "$100.01", Quantity: 1}})
	require.NoError(t, err)
	assert.InDelta(t, 0, totals.Shipping, 1e-9, "subtotal above 100.00 ships free")
}

func TestComputeTotals_DiscountThreshold(t *testing.T) {
	totals, err := ComputeTotals([]entity.CartLine{{UnitPrice: "$200.00", Quantity: 1}})
	require.NoError(t, err)
	assert.InDelta(t, 0, totals.Discount, 1e-9, "subtotal of exactly 200.00 gets no discount")

	totals, err = ComputeTotals([]entity.CartLine{{UnitPrice: "$200.01", Quantity: 1}})
	require.NoError(t, err)
	assert.InDelta(t, 200.01*DiscountRate, totals.Discount, 1e-9)
}

func TestComputeTotals_MalformedPrice(t *testing.T) {
	_, err := ComputeTotals([]entity.CartLine{{ProductID: "L1", UnitPrice: "gratis", Quantity: 1}})
	assert.Error(t, err)
}
