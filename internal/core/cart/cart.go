package cart

import "github.com/niksmo/visioncart/internal/core/domain"

// A Store is the ordered sequence of cart entries.
//
// The zero value is an empty cart ready to use.
type Store struct {
	entries []domain.CartEntry
}

func New() *Store {
	return &Store{}
}

// Add appends p to the end of the cart. The same product added twice
// occupies two positions.
func (s *Store) Add(p domain.Product) {
	s.entries = append(s.entries, domain.CartEntry{Product: p})
}

// RemoveAt removes the entry at position i and shifts the following entries
// down by one. Positions outside the cart are ignored.
func (s *Store) RemoveAt(i int) {
	if i < 0 || i >= len(s.entries) {
		return
	}
	entries := make([]domain.CartEntry, 0, len(s.entries)-1)
	entries = append(entries, s.entries[:i]...)
	entries = append(entries, s.entries[i+1:]...)
	s.entries = entries
}

// Total sums the prices of the current entries.
func (s *Store) Total() int64 {
	var total int64
	for _, e := range s.entries {
		total += e.Product.Price
	}
	return total
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the current sequence.
func (s *Store) Entries() []domain.CartEntry {
	out := make([]domain.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
