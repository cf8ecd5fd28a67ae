// Package store provides the data access layer behind a single DataSource
// interface, with a GORM-backed implementation for deployments and an
// in-memory fake for development and tests. Which one runs is a configuration
// choice; callers never branch on it.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"retailmedia-backend/internal/model"
	"retailmedia-backend/internal/reservation"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrStatusConflict is returned when a reservation status transition is not
// allowed by the lifecycle.
var ErrStatusConflict = errors.New("invalid status transition")

// DefaultUserID identifies the stubbed session user. Authentication is out of
// scope; every request runs as this buyer unless a caller supplies its own ID.
const DefaultUserID = "user-001"

// DataSource defines the capability set the API layer consumes: catalog
// reads, reservation submission, reservation queries and cancellation.
type DataSource interface {
	GetSpaces(ctx context.Context) ([]model.Space, error)
	GetSpace(ctx context.Context, id string) (*model.Space, error)
	GetStores(ctx context.Context) ([]model.Store, error)

	GetReservations(ctx context.Context, userID string) ([]model.Reservation, error)
	// ReserveSpace persists a validated request and returns the stored
	// reservation with initial status pending. Reserved spaces flip to
	// status "reserved".
	ReserveSpace(ctx context.Context, userID string, req reservation.Request) (*model.Reservation, error)
	// CancelReservation cancels a pending or confirmed reservation, marks
	// its payment refunded and releases its spaces back to "available".
	// The returned reservation has its Spaces association populated so the
	// caller can notify watchers of the freed spaces.
	CancelReservation(ctx context.Context, userID, id string) (*model.Reservation, error)
}

// gormStore implements DataSource using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed data source.
func NewGormStore(db *gorm.DB) DataSource {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for components that need raw access
// (subscription handlers, notification worker).
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetSpaces(ctx context.Context) ([]model.Space, error) {
	var spaces []model.Space
	if err := s.db.WithContext(ctx).Order("id").Find(&spaces).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch spaces: %w", err)
	}
	return spaces, nil
}

func (s *gormStore) GetSpace(ctx context.Context, id string) (*model.Space, error) {
	var space model.Space
	err := s.db.WithContext(ctx).First(&space, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("space %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch space %q: %w", id, err)
	}
	return &space, nil
}

func (s *gormStore) GetStores(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	if err := s.db.WithContext(ctx).Order("id").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return stores, nil
}

func (s *gormStore) GetReservations(ctx context.Context, userID string) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := s.db.WithContext(ctx).
		Preload("Spaces").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	return reservations, nil
}

func (s *gormStore) ReserveSpace(ctx context.Context, userID string, req reservation.Request) (*model.Reservation, error) {
	if len(req.SpaceIDs) == 0 {
		return nil, reservation.ErrEmptySelection
	}

	res := &model.Reservation{
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
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var spaces []*model.Space
		if err := tx.Find(&spaces, "id IN ?", req.SpaceIDs).Error; err != nil {
			return fmt.Errorf("failed to fetch requested spaces: %w", err)
		}
		if len(spaces) != len(req.SpaceIDs) {
			return fmt.Errorf("some requested spaces do not exist: %w", ErrNotFound)
		}
		for _, space := range spaces {
			if err := reservation.CheckAvailable(space); err != nil {
				return err
			}
		}

		res.Spaces = spaces
		if err := tx.Create(res).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		if err := tx.Model(&model.Space{}).
			Where("id IN ?", req.SpaceIDs).
			Update("status", model.StatusReserved).Error; err != nil {
			return fmt.Errorf("failed to mark spaces reserved: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *gormStore) CancelReservation(ctx context.Context, userID, id string) (*model.Reservation, error) {
	var res model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Spaces").
			First(&res, "id = ? AND user_id = ?", id, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("reservation %q: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch reservation %q: %w", id, err)
		}

		if !res.Status.CanTransitionTo(model.ReservationCancelled) {
			return fmt.Errorf("reservation %q is %s: %w", id, res.Status, ErrStatusConflict)
		}

		res.Status = model.ReservationCancelled
		res.PaymentStatus = model.PaymentRefunded
		if err := tx.Model(&res).Updates(map[string]any{
			"status":         res.Status,
			"payment_status": res.PaymentStatus,
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel reservation %q: %w", id, err)
		}

		// Release the covered spaces so watchers can be notified.
		if len(res.Spaces) > 0 {
			if err := tx.Model(&model.Space{}).
				Where("id IN ?", res.SpaceIDs()).
				Update("status", model.StatusAvailable).Error; err != nil {
				return fmt.Errorf("failed to release spaces: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
