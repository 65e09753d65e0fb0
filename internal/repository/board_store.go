package repository

import (
	"errors"
	"sync"

	"github.com/cristianlarad/ARCADE-MAX/internal/entity"
)

// ErrNotPermutation is returned when a reorder does not carry exactly the
// identities currently on the board: nothing may be invented or dropped by a
// drag gesture, only the order changes.
var ErrNotPermutation = errors.New("reorder is not a permutation of the current board")

// BoardStore holds the presentation-local order of tasks and projects, one
// ordered sequence per (session, board). The order carries no authority: it
// is seeded from the task backend and never synchronized back.
type BoardStore struct {
	mu     sync.RWMutex
	boards map[boardKey][]entity.Orderable
}

type boardKey struct {
	session string
	board   string
}

func NewBoardStore() *BoardStore {
	return &BoardStore{boards: make(map[boardKey][]entity.Orderable)}
}

// Seed replaces the board wholesale with a freshly fetched sequence. Any
// unsaved local reordering is overwritten; the newest seed always wins.
func (s *BoardStore) Seed(session, board string, items []entity.Orderable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := make([]entity.Orderable, len(items))
	copy(seeded, items)
	s.boards[boardKey{session, board}] = seeded
}

// Reorder applies a full permutation of the board, expressed as the new id
// sequence produced by a drag gesture. The held identity set must match the
// requested one exactly or the reorder is rejected.
func (s *BoardStore) Reorder(session, board string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := boardKey{session, board}
	items := s.boards[key]
	if len(ids) != len(items) {
		return ErrNotPermutation
	}

	byID := make(map[string]entity.Orderable, len(items))
	for _, item := range items {
		byID[item.EntityID()] = item
	}

	reordered := make([]entity.Orderable, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return ErrNotPermutation
		}
		delete(byID, id) // duplicate ids in the request are not a permutation
		reordered = append(reordered, item)
	}

	s.boards[key] = reordered
	return nil
}

// Remove deletes the entity with the given id from the board. Idempotent: a
// missing id (stale delete promise, already reseeded board) is a no-op.
func (s *BoardStore) Remove(session, board, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := boardKey{session, board}
	items := s.boards[key]
	for i, item := range items {
		if item.EntityID() == id {
			s.boards[key] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveEverywhere reconciles a backend-confirmed deletion into every seeded
// board, regardless of session. Returns how many boards held the entity.
func (s *BoardStore) RemoveEverywhere(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, items := range s.boards {
		for i, item := range items {
			if item.EntityID() == id {
				s.boards[key] = append(items[:i], items[i+1:]...)
				removed++
				break
			}
		}
	}
	return removed
}

// Replace swaps a single entity in place, keeping its position. Used when a
// backend-confirmed mutation (e.g. task completion) changes display fields.
func (s *BoardStore) Replace(session, board string, item entity.Orderable) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := boardKey{session, board}
	items := s.boards[key]
	for i, held := range items {
		if held.EntityID() == item.EntityID() {
			items[i] = item
			return true
		}
	}
	return false
}

// Items returns a copy of the board's current order.
func (s *BoardStore) Items(session, board string) []entity.Orderable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.boards[boardKey{session, board}]
	out := make([]entity.Orderable, len(items))
	copy(out, items)
	return out
}

// Seeded reports whether the board has received an initial sequence.
func (s *BoardStore) Seeded(session, board string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.boards[boardKey{session, board}]
	return ok
}

// Drop forgets a board entirely, forcing the next read to reseed.
func (s *BoardStore) Drop(session, board string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, boardKey{session, board})
}
