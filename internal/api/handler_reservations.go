package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retailmedia-backend/internal/model"
	"retailmedia-backend/internal/notification"
	"retailmedia-backend/internal/reservation"
	"retailmedia-backend/internal/selection"
	"retailmedia-backend/internal/store"
)

const dateLayout = "2006-01-02"

// reservationResponse decorates a stored reservation with display labels and
// the flat space ID list.
type reservationResponse struct {
	model.Reservation
	SpaceIDs           []string `json:"spaceIds"`
	StatusLabel        string   `json:"statusLabel"`
	PaymentStatusLabel string   `json:"paymentStatusLabel"`
}

func newReservationResponse(r model.Reservation) reservationResponse {
	return reservationResponse{
		Reservation:        r,
		SpaceIDs:           r.SpaceIDs(),
		StatusLabel:        r.Status.Label(),
		PaymentStatusLabel: r.PaymentStatus.Label(),
	}
}

type createReservationRequest struct {
	// SpaceIDs overrides the session selection when present.
	SpaceIDs []string `json:"spaceIds"`

	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`

	CompanyName  string `json:"companyName"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
}

// GetReservations handles GET /api/reservations.
func (h *Handler) GetReservations(c *gin.Context) {
	reservations, err := h.source.GetReservations(c.Request.Context(), h.userID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}

	out := make([]reservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, newReservationResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

// GetReservationStats handles GET /api/reservations/stats: the dashboard
// summary numbers.
func (h *Handler) GetReservationStats(c *gin.Context) {
	ctx := c.Request.Context()
	reservations, err := h.source.GetReservations(ctx, h.userID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}
	spaces, err := h.source.GetSpaces(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve spaces"})
		return
	}

	exposureByID := make(map[string]int, len(spaces))
	for _, s := range spaces {
		exposureByID[s.ID] = s.ExposurePotential
	}

	byStatus := make(map[model.ReservationStatus]int)
	var totalInvested float64
	var activeExposure int
	for _, r := range reservations {
		byStatus[r.Status]++
		if r.Status != model.ReservationCancelled {
			totalInvested += r.TotalPrice
		}
		if r.Status == model.ReservationPending || r.Status == model.ReservationConfirmed {
			for _, id := range r.SpaceIDs() {
				activeExposure += exposureByID[id]
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":          len(reservations),
		"byStatus":       byStatus,
		"totalInvested":  totalInvested,
		"activeExposure": activeExposure,
	})
}

// CreateReservation handles POST /api/reservations. The request is validated
// and assembled by the reservation builder, then handed to the data source.
// When no explicit space list is supplied, the session's selection is
// consumed and cleared on success (the checkout flow).
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sel, fromSession, err := h.resolveSelection(c, req.SpaceIDs)
	if err != nil {
		h.abortReservationError(c, err)
		return
	}

	contact := reservation.Contact{
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
	}
	policy := reservation.Policy{MinLeaseDays: h.cfg.Catalog.MinLeaseDays}

	built, err := reservation.Build(sel, period, contact, policy)
	if err != nil {
		h.abortReservationError(c, err)
		return
	}

	res, err := h.source.ReserveSpace(c.Request.Context(), h.userID(c), built)
	if err != nil {
		h.abortReservationError(c, err)
		return
	}

	if fromSession {
		sel.Clear()
	}

	c.JSON(http.StatusCreated, gin.H{
		"reservation": newReservationResponse(*res),
		"message":     notification.ReservationSubmitted(res),
	})
}

// CancelReservation handles POST /api/reservations/{reservation_id}/cancel.
// Freed spaces are dispatched to the watcher notification pool.
func (h *Handler) CancelReservation(c *gin.Context) {
	res, err := h.source.CancelReservation(c.Request.Context(), h.userID(c), c.Param("reservation_id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, store.ErrStatusConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if h.pool != nil {
		for _, id := range res.SpaceIDs() {
			h.pool.Dispatch(id)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"reservation": newReservationResponse(*res),
		"message":     notification.ReservationCancelled(res),
	})
}

// resolveSelection yields the selection set backing the reservation: the
// session cart, or a transient set built from explicit space IDs with the
// availability gate applied per space.
func (h *Handler) resolveSelection(c *gin.Context, spaceIDs []string) (*selection.Set, bool, error) {
	if len(spaceIDs) == 0 {
		return h.session(c), true, nil
	}

	sel := selection.New()
	for _, id := range spaceIDs {
		space, err := h.source.GetSpace(c.Request.Context(), id)
		if err != nil {
			return nil, false, err
		}
		if err := reservation.CheckAvailable(space); err != nil {
			return nil, false, err
		}
		sel.Add(*space)
	}
	return sel, false, nil
}

func parsePeriod(start, end string) (reservation.Period, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return reservation.Period{}, errors.New("startDate must be formatted YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return reservation.Period{}, errors.New("endDate must be formatted YYYY-MM-DD")
	}
	return reservation.Period{Start: startDate, End: endDate}, nil
}

// abortReservationError maps the reservation error taxonomy onto HTTP
// statuses and attaches the toast message for the notification sink.
func (h *Handler) abortReservationError(c *gin.Context, err error) {
	msg := notification.ValidationFailed(err)
	body := gin.H{"error": err.Error(), "message": msg}

	var contactErr *reservation.ContactError
	if errors.As(err, &contactErr) {
		body["fields"] = contactErr.Fields
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, body)
	case errors.Is(err, reservation.ErrSpaceUnavailable):
		c.JSON(http.StatusConflict, body)
	case errors.Is(err, reservation.ErrEmptySelection),
		errors.Is(err, reservation.ErrInvalidDateRange),
		errors.Is(err, reservation.ErrIncompleteContact):
		c.JSON(http.StatusBadRequest, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}
