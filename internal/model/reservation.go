package model

import "time"

// ReservationStatus is the lifecycle state of a reservation. The lifecycle is
// pending -> confirmed -> completed, with cancellation possible from pending
// or confirmed. Completed and cancelled are terminal.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// Label returns the pt-BR display name for the status.
func (s ReservationStatus) Label() string {
	switch s {
	case ReservationPending:
		return "Pendente"
	case ReservationConfirmed:
		return "Confirmado"
	case ReservationCompleted:
		return "Concluído"
	case ReservationCancelled:
		return "Cancelado"
	}
	return string(s)
}

// Terminal reports whether the status admits no further transitions.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCompleted || next == ReservationCancelled
	case ReservationCompleted, ReservationCancelled:
		return false
	}
	return false
}

// PaymentStatus tracks the payment side of a reservation. It is display-only
// in this system; no payment processing happens here.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Label returns the pt-BR display name for the payment status.
func (p PaymentStatus) Label() string {
	switch p {
	case PaymentPending:
		return "Pendente"
	case PaymentPaid:
		return "Pago"
	case PaymentRefunded:
		return "Reembolsado"
	}
	return string(p)
}

// Reservation is a stored reservation covering one or more spaces.
type Reservation struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"userId"`

	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`

	Status        ReservationStatus `gorm:"size:32;index;not null;default:pending" json:"status"`
	TotalPrice    float64           `gorm:"not null" json:"totalPrice"`
	PaymentStatus PaymentStatus     `gorm:"size:32;not null;default:pending" json:"paymentStatus"`

	CompanyName  string `gorm:"size:256;not null" json:"companyName"`
	ContactName  string `gorm:"size:256;not null" json:"contactName"`
	ContactEmail string `gorm:"size:256;not null" json:"contactEmail"`
	ContactPhone string `gorm:"size:32;not null" json:"contactPhone"`
	Notes        string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Spaces []*Space `gorm:"many2many:reservation_spaces;" json:"-"`
}

// SpaceIDs returns the IDs of the reserved spaces, in association order.
func (r *Reservation) SpaceIDs() []string {
	ids := make([]string, len(r.Spaces))
	for i, s := range r.Spaces {
		ids[i] = s.ID
	}
	return ids
}
