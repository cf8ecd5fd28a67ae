package reservation

import (
	"errors"
	"fmt"

	"retailmedia-backend/internal/model"
)

// Sentinel errors for the expected validation outcomes. All are recoverable;
// callers surface them to the user and re-prompt. Use errors.Is to classify
// and errors.As to reach the detail types.
var (
	ErrEmptySelection    = errors.New("nenhum espaço selecionado")
	ErrInvalidDateRange  = errors.New("período de locação inválido")
	ErrIncompleteContact = errors.New("dados de contato incompletos")
	ErrSpaceUnavailable  = errors.New("espaço indisponível")
)

// DateRangeError reports why a reservation period was rejected.
type DateRangeError struct {
	Reason  string
	MinDays int
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidDateRange, e.Reason)
}

func (e *DateRangeError) Unwrap() error { return ErrInvalidDateRange }

// ContactError carries per-field validation messages, keyed by the JSON field
// name, so the caller can surface them next to the offending input.
type ContactError struct {
	Fields map[string]string
}

func (e *ContactError) Error() string {
	return fmt.Sprintf("%s (%d campos)", ErrIncompleteContact, len(e.Fields))
}

func (e *ContactError) Unwrap() error { return ErrIncompleteContact }

// UnavailableError rejects an attempt to select a space that is not available.
// The message reflects the space's current status.
type UnavailableError struct {
	SpaceID string
	Status  model.SpaceStatus
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %q está com status %s", ErrSpaceUnavailable, e.SpaceID, e.Status.Label())
}

func (e *UnavailableError) Unwrap() error { return ErrSpaceUnavailable }
