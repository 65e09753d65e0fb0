package repository

import (
	"sync"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
)

// CartStore holds one cart per session, in memory only. Carts vanish on
// restart; the session token is the only thing the surrounding application
// persists.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string][]entity.CartLine
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string][]entity.CartLine)}
}

// AddItem merges by product ID: an existing line has its quantity increased,
// otherwise the line is appended. Invariant: at most one line per product ID.
func (s *CartStore) AddItem(session string, item entity.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[session]
	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			lines[i].Quantity += item.Quantity
			return
		}
	}
	s.carts[session] = append(lines, item)
}

// SetQuantity replaces the quantity of the matching line. No-op when the
// product is not in the cart.
func (s *CartStore) SetQuantity(session, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[session]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the matching line. No-op when absent.
func (s *CartStore) RemoveItem(session, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[session]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[session] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// Clear empties the session's cart.
func (s *CartStore) Clear(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
}

// Lines returns a copy of the session's current lines.
func (s *CartStore) Lines(session string) []entity.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[session]
	out := make([]entity.CartLine, len(lines))
	copy(out, lines)
	return out
}
