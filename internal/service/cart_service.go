package service

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
	"github.com/cristianlarad/ARCADE-MAX/internal/pricing"
	"github.com/cristianlarad/ARCADE-MAX/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartService owns the session cart operations. Everything here is
// synchronous and in-memory; totals are recomputed from the line sequence on
// every read so they can never go stale.
type CartService struct {
	carts *repository.CartStore
}

func NewCartService(carts *repository.CartStore) *CartService {
	return &CartService{carts: carts}
}

// AddItem puts a catalog item into the session's cart, merging quantities
// when the product is already there. The price string is validated up front:
// a line that cannot be priced never enters the cart.
func (s *CartService) AddItem(session string, item entity.CartLine) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if _, err := pricing.ParseAmount(item.UnitPrice); err != nil {
		logger.Warn().Err(err).Msgf("Rejecting cart item %s with unparseable price", item.ProductID)
		return fmt.Errorf("invalid price for product %s: %w", item.ProductID, err)
	}

	s.carts.AddItem(session, item)
	return nil
}

// UpdateQuantity replaces a line's quantity. Unknown product ids are a
// silent no-op.
func (s *CartService) UpdateQuantity(session, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	s.carts.SetQuantity(session, productID, quantity)
	return nil
}

func (s *CartService) RemoveItem(session, productID string) {
	s.carts.RemoveItem(session, productID)
}

func (s *CartService) Clear(session string) {
	s.carts.Clear(session)
}

// Cart returns the current lines together with freshly computed totals.
func (s *CartService) Cart(session string) ([]entity.CartLine, entity.OrderTotals, error) {
	lines := s.carts.Lines(session)
	totals, err := pricing.ComputeTotals(lines)
	if err != nil {
		// Lines are price-validated on entry, so this only fires if that
		// guarantee is broken.
		logger.Error().Err(err).Msgf("Error computing totals for session %s", session)
		return nil, entity.OrderTotals{}, err
	}
	return lines, totals, nil
}
