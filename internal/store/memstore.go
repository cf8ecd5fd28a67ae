package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"retailmedia-backend/internal/model"
	"retailmedia-backend/internal/reservation"
)

// MemStore is the in-memory DataSource fake. It mirrors the mock API the
// front end was originally developed against, including an optional fixed
// latency per call. Safe for concurrent use.
type MemStore struct {
	mu           sync.RWMutex
	spaces       []model.Space
	stores       []model.Store
	reservations []model.Reservation
	latency      time.Duration
}

// NewMemStore creates a seeded in-memory data source. A zero latency
// disables the artificial delay.
func NewMemStore(latency time.Duration) *MemStore {
	return &MemStore{
		spaces:       SeedSpaces(),
		stores:       SeedStores(),
		reservations: SeedReservations(DefaultUserID),
		latency:      latency,
	}
}

// Reset replaces the store's contents. Intended for tests.
func (m *MemStore) Reset(spaces []model.Space, stores []model.Store, reservations []model.Reservation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spaces = spaces
	m.stores = stores
	m.reservations = reservations
}

// delay simulates network latency, honoring context cancellation.
func (m *MemStore) delay(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MemStore) GetSpaces(ctx context.Context) ([]model.Space, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Space, len(m.spaces))
	copy(out, m.spaces)
	return out, nil
}

func (m *MemStore) GetSpace(ctx context.Context, id string) (*model.Space, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, space := range m.spaces {
		if space.ID == id {
			out := space
			return &out, nil
		}
	}
	return nil, fmt.Errorf("space %q: %w", id, ErrNotFound)
}

func (m *MemStore) GetStores(ctx context.Context) ([]model.Store, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Store, len(m.stores))
	copy(out, m.stores)
	return out, nil
}

func (m *MemStore) GetReservations(ctx context.Context, userID string) ([]model.Reservation, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Reservation
	for _, res := range m.reservations {
		if res.UserID == userID {
			out = append(out, cloneReservation(res))
		}
	}
	return out, nil
}

// cloneReservation deep-copies the Spaces association so callers can never
// mutate store state through returned pointers.
func cloneReservation(r model.Reservation) model.Reservation {
	out := r
	if len(r.Spaces) > 0 {
		out.Spaces = make([]*model.Space, len(r.Spaces))
		for i, s := range r.Spaces {
			space := *s
			out.Spaces[i] = &space
		}
	}
	return out
}

func (m *MemStore) ReserveSpace(ctx context.Context, userID string, req reservation.Request) (*model.Reservation, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	if len(req.SpaceIDs) == 0 {
		return nil, reservation.ErrEmptySelection
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	indexes := make([]int, 0, len(req.SpaceIDs))
	var covered []*model.Space
	for _, id := range req.SpaceIDs {
		idx := m.spaceIndex(id)
		if idx < 0 {
			return nil, fmt.Errorf("space %q: %w", id, ErrNotFound)
		}
		if err := reservation.CheckAvailable(&m.spaces[idx]); err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}

	now := time.Now().UTC()
	for _, idx := range indexes {
		m.spaces[idx].Status = model.StatusReserved
		space := m.spaces[idx]
		covered = append(covered, &space)
	}

	res := model.Reservation{
		ID:            uuid.NewString(),
		UserID:        userID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        model.ReservationPending,
		TotalPrice:    req.TotalPrice,
		PaymentStatus: model.PaymentPending,
		CompanyName:   req.Contact.CompanyName,
		ContactName:   req.Contact.ContactName,
		ContactEmail:  req.Contact.ContactEmail,
		ContactPhone:  req.Contact.ContactPhone,
		Notes:         req.Contact.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
		Spaces:        covered,
	}
	m.reservations = append(m.reservations, res)

	out := cloneReservation(res)
	return &out, nil
}

func (m *MemStore) CancelReservation(ctx context.Context, userID, id string) (*model.Reservation, error) {
	if err := m.delay(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.reservations {
		res := &m.reservations[i]
		if res.ID != id || res.UserID != userID {
			continue
		}
		if !res.Status.CanTransitionTo(model.ReservationCancelled) {
			return nil, fmt.Errorf("reservation %q is %s: %w", id, res.Status, ErrStatusConflict)
		}

		res.Status = model.ReservationCancelled
		res.PaymentStatus = model.PaymentRefunded
		res.UpdatedAt = time.Now().UTC()

		for _, space := range res.Spaces {
			if idx := m.spaceIndex(space.ID); idx >= 0 {
				m.spaces[idx].Status = model.StatusAvailable
			}
		}

		out := cloneReservation(*res)
		return &out, nil
	}
	return nil, fmt.Errorf("reservation %q: %w", id, ErrNotFound)
}

// spaceIndex returns the index of the space with the given ID, or -1.
// Callers must hold the lock.
func (m *MemStore) spaceIndex(id string) int {
	for i := range m.spaces {
		if m.spaces[i].ID == id {
			return i
		}
	}
	return -1
}
