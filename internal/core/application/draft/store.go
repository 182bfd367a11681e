package draft

import (
	"sync"

	"fieldservice/internal/core/domain/model/kernel"
)

// Store keeps the live drafts of all orders currently being worked on,
// keyed by order ID. Drafts live in memory for the duration of a work
// session; durability is the auto-save scheduler's concern.
type Store struct {
	mu     sync.Mutex
	drafts map[kernel.UUID]*Draft
}

// NewStore creates an empty draft store.
func NewStore() *Store {
	return &Store{drafts: make(map[kernel.UUID]*Draft)}
}

// Get returns the draft for the given order, if one exists.
func (s *Store) Get(orderID kernel.UUID) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[orderID]
	return d, ok
}

// GetOrCreate returns the draft for the given order, creating an empty one
// on first access. The second result reports whether the draft was created
// by this call, so the caller knows to seed it from persisted state.
func (s *Store) GetOrCreate(orderID kernel.UUID) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.drafts[orderID]; ok {
		return d, false
	}

	d := NewDraft(orderID)
	s.drafts[orderID] = d
	return d, true
}

// Remove drops the draft for the given order, typically after the order has
// been completed and the draft absorbed into the aggregate.
func (s *Store) Remove(orderID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, orderID)
}

// All returns the current drafts. The slice is a snapshot; drafts themselves
// are shared and lock internally.
func (s *Store) All() []*Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		all = append(all, d)
	}
	return all
}
