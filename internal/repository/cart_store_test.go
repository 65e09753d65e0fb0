package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
)

func TestCartStore_AddItemMerges(t *testing.T) {
	store := NewCartStore()

	store.AddItem("ana@example.com", entity.CartLine{ProductID: "L1", Name: "Nebula 14", UnitPrice: "$150.00", Quantity: 1})
	store.AddItem("ana@example.com", entity.CartLine{ProductID: "L1", Name: "Nebula 14", UnitPrice: "$150.00", Quantity: 2})
	store.AddItem("ana@example.com", entity.CartLine{ProductID: "L2", Name: "Vortex 16", UnitPrice: "$999.00", Quantity: 1})

	lines := store.Lines("ana@example.com")
	require.Len(t, lines, 2, "one line per distinct product id")
	assert.Equal(t, "L1", lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity, "quantities of repeated adds accumulate")
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCartStore_SessionsAreIsolated(t *testing.T) {
	store := NewCartStore()

	store.AddItem("ana@example.com", entity.CartLine{ProductID: "L1", Quantity: 1})
	store.AddItem("ben@example.com", entity.CartLine{ProductID: "L1", Quantity: 5})

	assert.Equal(t, 1, store.Lines("ana@example.com")[0].Quantity)
	assert.Equal(t, 5, store.Lines("ben@example.com")[0].Quantity)
	assert.Empty(t, store.Lines("carla@example.com"))
}

func TestCartStore_SetQuantity(t *testing.T) {
	store := NewCartStore()
	store.AddItem("s", entity.CartLine{ProductID: "L1", Quantity: 1})

	store.SetQuantity("s", "L1", 4)
	assert.Equal(t, 4, store.Lines("s")[0].Quantity)

	// Absent id is a silent no-op, not an error.
	store.SetQuantity("s", "missing", 9)
	lines := store.Lines("s")
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestCartStore_RemoveItem(t *testing.T) {
	store := NewCartStore()
	store.AddItem("s", entity.CartLine{ProductID: "L1", Quantity: 1})
	store.AddItem("s", entity.CartLine{ProductID: "L2", Quantity: 1})

	store.RemoveItem("s", "L1")
	lines := store.Lines("s")
	require.Len(t, lines, 1)
	assert.Equal(t, "L2", lines[0].ProductID)

	// Removing again is a no-op.
	store.RemoveItem("s", "L1")
	assert.Len(t, store.Lines("s"), 1)
}

func TestCartStore_Clear(t *testing.T) {
	store := NewCartStore()
	store.AddItem("s", entity.CartLine{ProductID: "L1", Quantity: 1})
	store.AddItem("s", entity.CartLine{ProductID: "L2", Quantity: 2})

	store.Clear("s")
	assert.Empty(t, store.Lines("s"))
}

func TestCartStore_LinesReturnsCopy(t *testing.T) {
	store := NewCartStore()
	store.AddItem("s", entity.CartLine{ProductID: "L1", Quantity: 1})

	lines := store.Lines("s")
	lines[0].Quantity = 99

	assert.Equal(t, 1, store.Lines("s")[0].Quantity, "callers must not be able to mutate the stored cart")
}
