package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailmedia-backend/internal/model"
	"retailmedia-backend/internal/reservation"
)

func testRequest(spaceIDs []string, total float64) reservation.Request {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return reservation.Request{
		SpaceIDs:   spaceIDs,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 30),
		TotalPrice: total,
		Contact: reservation.Contact{
			CompanyName:  "Tech Solutions LTDA",
			ContactName:  "Maria Silva",
			ContactEmail: "maria@techsolutions.com",
			ContactPhone: "(92) 98765-4321",
		},
	}
}

func TestMemStoreSeededCatalog(t *testing.T) {
	m := NewMemStore(0)
	ctx := context.Background()

	spaces, err := m.GetSpaces(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, spaces)

	stores, err := m.GetStores(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, stores)

	// Every space references a seeded store by ID.
	storeIDs := make(map[string]struct{})
	for _, s := range stores {
		storeIDs[s.ID] = struct{}{}
	}
	for _, space := range spaces {
		assert.Contains(t, storeIDs, space.StoreID, "space %s", space.ID)
	}
}

func TestMemStoreGetSpace(t *testing.T) {
	m := NewMemStore(0)
	ctx := context.Background()

	space, err := m.GetSpace(ctx, "space-001")
	require.NoError(t, err)
	assert.Equal(t, "space-001", space.ID)

	_, err = m.GetSpace(ctx, "space-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreReserveSpace(t *testing.T) {
	m := NewMemStore(0)
	ctx := context.Background()

	res, err := m.ReserveSpace(ctx, DefaultUserID, testRequest([]string{"space-001"}, 8000))
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, model.ReservationPending, res.Status)
	assert.Equal(t, model.PaymentPending, res.PaymentStatus)
	assert.Equal(t, 8000.0, res.TotalPrice)
	assert.Equal(t, []string{"space-001"}, res.SpaceIDs())

	// The covered space is no longer available.
	space, err := m.GetSpace(ctx, "space-001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusReserved, space.Status)

	// A second attempt on the same space is rejected.
	_, err = m.ReserveSpace(ctx, DefaultUserID, testRequest([]string{"space-001"}, 8000))
	assert.ErrorIs(t, err, reservation.ErrSpaceUnavailable)
}

func TestMemStoreReserveSpaceRejections(t *testing.T) {
	m := NewMemStore(0)
	ctx := context.Background()

	_, err := m.ReserveSpace(ctx, DefaultUserID, testRequest(nil, 0))
	assert.ErrorIs(t, err, reservation.ErrEmptySelection)

	_, err = m.ReserveSpace(ctx, DefaultUserID, testRequest([]string{"space-999"}, 100))
	assert.ErrorIs(t, err, ErrNotFound)

	// space-005 is seeded as reserved.
	_, err = m.ReserveSpace(ctx, DefaultUserID, testRequest([]string{"space-005"}, 2200))
	assert.ErrorIs(t, err, reservation.ErrSpaceUnavailable)
}

func TestMemStoreCancelReservation(t *testing.T) {
	m := NewMemStore(0)
	ctx := context.Background()

	res, err := m.ReserveSpace(ctx, DefaultUserID, testRequest([]string{"space-001"}, 8000))
	require.NoError(t, err)

	cancelled, err := m.CancelReservation(ctx, DefaultUserID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, cancelled.Status)
	assert.Equal(t, model.PaymentRefunded, cancelled.PaymentStatus)

	// The covered space is released.
	space, err := m.GetSpace(ctx, "space-001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, space.Status)

	// A terminal reservation cannot be cancelled again.
	_, err = m.CancelReservation(ctx, DefaultUserID, res.ID)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestMemStoreCancelReservationScoping(t *testing.T) {
	m := NewMemStore(0)
	ctx := context.Background()

	_, err := m.CancelReservation(ctx, DefaultUserID, "res-999")
	assert.ErrorIs(t, err, ErrNotFound)

	// Another user's reservation is invisible.
	res, err := m.ReserveSpace(ctx, DefaultUserID, testRequest([]string{"space-002"}, 5500))
	require.NoError(t, err)
	_, err = m.CancelReservation(ctx, "someone-else", res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreGetReservationsFiltersByUser(t *testing.T) {
	m := NewMemStore(0)
	ctx := context.Background()

	mine, err := m.GetReservations(ctx, DefaultUserID)
	require.NoError(t, err)
	assert.NotEmpty(t, mine)

	theirs, err := m.GetReservations(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

// Returned reservations are detached copies; mutating one must never reach
// back into the store.
func TestMemStoreReturnsDetachedCopies(t *testing.T) {
	m := NewMemStore(0)
	ctx := context.Background()

	res, err := m.ReserveSpace(ctx, DefaultUserID, testRequest([]string{"space-001"}, 8000))
	require.NoError(t, err)
	require.NotEmpty(t, res.Spaces)
	res.Spaces[0].ID = "mutated"

	mine, err := m.GetReservations(ctx, DefaultUserID)
	require.NoError(t, err)
	for _, r := range mine {
		for _, s := range r.Spaces {
			assert.NotEqual(t, "mutated", s.ID)
		}
	}

	// The same holds for list results.
	require.NotEmpty(t, mine[0].Spaces)
	mine[0].Spaces[0].ID = "mutated-again"
	again, err := m.GetReservations(ctx, DefaultUserID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated-again", again[0].Spaces[0].ID)
}

func TestMemStoreLatencyHonorsContext(t *testing.T) {
	m := NewMemStore(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.GetSpaces(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
