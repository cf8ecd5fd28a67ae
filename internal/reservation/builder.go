// Package reservation validates and assembles reservation requests from the
// current selection, and encodes the reservation status lifecycle rules.
// Building a request performs no I/O; submission is the caller's handoff to
// the data source.
package reservation

import (
	"regexp"
	"time"
	"unicode/utf8"

	"retailmedia-backend/internal/model"
	"retailmedia-backend/internal/selection"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Brazilian mobile format, e.g. "(92) 98765-4321".
	phoneRe = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
)

// Policy holds the reservation validation knobs.
type Policy struct {
	MinLeaseDays int
}

// DefaultPolicy is the reference policy: one month minimum lease.
var DefaultPolicy = Policy{MinLeaseDays: 30}

// Period is a requested lease date range.
type Period struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Days returns the period length in whole days.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours() / 24)
}

// Contact is the buyer-supplied contact payload.
type Contact struct {
	CompanyName  string `json:"companyName"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes,omitempty"`
}

// Request is the validated, assembled payload handed to the reservation
// submission service. It is ephemeral; persistence belongs to the service.
type Request struct {
	SpaceIDs   []string  `json:"spaceIds"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
	Contact    Contact   `json:"contact"`
}

// CheckAvailable gates selection on the space's status. Call sites must pass
// this before adding a space to the selection set; the set itself does not
// check status.
func CheckAvailable(space *model.Space) error {
	if !space.Available() {
		return &UnavailableError{SpaceID: space.ID, Status: space.Status}
	}
	return nil
}

// Build validates the selection, period and contact data and assembles the
// outbound request. It never submits; on success the caller hands the request
// to the data source.
func Build(sel *selection.Set, period Period, contact Contact, policy Policy) (Request, error) {
	if sel == nil || sel.Len() == 0 {
		return Request{}, ErrEmptySelection
	}
	if policy.MinLeaseDays <= 0 {
		policy = DefaultPolicy
	}

	if err := validatePeriod(period, policy); err != nil {
		return Request{}, err
	}
	if err := validateContact(contact); err != nil {
		return Request{}, err
	}

	var total float64
	for _, space := range sel.Spaces() {
		total += space.Price
	}

	return Request{
		SpaceIDs:   sel.IDs(),
		StartDate:  period.Start,
		EndDate:    period.End,
		TotalPrice: total,
		Contact:    contact,
	}, nil
}

func validatePeriod(period Period, policy Policy) error {
	if period.Start.IsZero() || period.End.IsZero() {
		return &DateRangeError{Reason: "período não selecionado", MinDays: policy.MinLeaseDays}
	}
	if !period.End.After(period.Start) {
		return &DateRangeError{Reason: "data final deve ser posterior à data inicial", MinDays: policy.MinLeaseDays}
	}
	if period.Days() < policy.MinLeaseDays {
		return &DateRangeError{
			Reason:  "o período mínimo de locação é de 1 mês (30 dias)",
			MinDays: policy.MinLeaseDays,
		}
	}
	return nil
}

func validateContact(c Contact) error {
	fields := make(map[string]string)

	if utf8.RuneCountInString(c.CompanyName) < 2 {
		fields["companyName"] = "Nome da empresa deve ter pelo menos 2 caracteres"
	}
	if utf8.RuneCountInString(c.ContactName) < 3 {
		fields["contactName"] = "Nome do contato deve ter pelo menos 3 caracteres"
	}
	if !emailRe.MatchString(c.ContactEmail) {
		fields["contactEmail"] = "Email inválido"
	}
	if !phoneRe.MatchString(c.ContactPhone) {
		fields["contactPhone"] = "Telefone inválido"
	}

	if len(fields) > 0 {
		return &ContactError{Fields: fields}
	}
	return nil
}
