// Package selection implements the reservation cart: an insertion-ordered set
// of chosen spaces, deduplicated by ID, with derived aggregates.
//
// A Set is a plain value constructed with New; callers own their instance and
// pass it explicitly to whatever needs it. Concurrent requests sharing a
// session mutate the same instance, so the set locks internally.
package selection

import (
	"sync"

	"retailmedia-backend/internal/model"
)

// Set holds the currently selected spaces. Adding an already-present ID is a
// no-op, as is removing an absent one. The set itself is status-agnostic;
// callers gate on availability before calling Add. Safe for concurrent use.
type Set struct {
	mu    sync.Mutex
	order []string
	byID  map[string]model.Space
}

// Aggregate summarizes the current selection for the cart panel.
type Aggregate struct {
	Count              int     `json:"count"`
	TotalPrice         float64 `json:"totalPrice"`
	TotalExposure      int     `json:"totalExposure"`
	DistinctStoreCount int     `json:"distinctStoreCount"`
}

// New creates an empty selection set.
func New() *Set {
	return &Set{byID: make(map[string]model.Space)}
}

// Add inserts the space if absent. Returns true if the set changed.
func (s *Set) Add(space model.Space) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[space.ID]; ok {
		return false
	}
	s.byID[space.ID] = space
	s.order = append(s.order, space.ID)
	return true
}

// Remove deletes the space with the given ID if present. Returns true if the
// set changed.
func (s *Set) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether the space with the given ID is selected.
func (s *Set) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	return ok
}

// Clear empties the set.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	for id := range s.byID {
		delete(s.byID, id)
	}
}

// Len returns the number of selected spaces.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Spaces returns the selected spaces in insertion order.
func (s *Set) Spaces() []model.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Space, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// IDs returns the selected space IDs in insertion order.
func (s *Set) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Aggregate derives the cart summary: count, price and exposure totals, and
// the number of distinct stores covered.
func (s *Set) Aggregate() Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := Aggregate{Count: len(s.order)}
	stores := make(map[string]struct{})
	for _, id := range s.order {
		space := s.byID[id]
		agg.TotalPrice += space.Price
		agg.TotalExposure += space.ExposurePotential
		stores[space.StoreID] = struct{}{}
	}
	agg.DistinctStoreCount = len(stores)
	return agg
}
