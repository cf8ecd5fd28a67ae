package api

import (
	"sync"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"retailmedia-backend/config"
	"retailmedia-backend/internal/notification"
	"retailmedia-backend/internal/selection"
	"retailmedia-backend/internal/store"
)

const (
	// sessionCookie names the cookie keying the per-session selection set.
	sessionCookie = "rm_session"

	// sessionTTL bounds how long an idle cart is kept; every touch renews it.
	sessionTTL = 24 * time.Hour
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	source  store.DataSource
	db      *gorm.DB // nil in memory mode; subscription routes are then absent
	cfg     *config.Config
	webpush *webpush.Options
	pool    *notification.WorkerPool // nil when push is not configured

	// mu makes session get-or-create atomic; the sets lock themselves.
	mu         sync.Mutex
	selections *cache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(source store.DataSource, db *gorm.DB, cfg *config.Config, webpushOptions *webpush.Options, pool *notification.WorkerPool) *Handler {
	return &Handler{
		source:     source,
		db:         db,
		cfg:        cfg,
		webpush:    webpushOptions,
		pool:       pool,
		selections: cache.New(sessionTTL, time.Hour),
	}
}

// session returns the selection set for the request's session, creating the
// session cookie and an empty set on first sight. Each session owns its own
// Set instance; idle sessions are evicted after sessionTTL.
func (h *Handler) session(c *gin.Context) *selection.Set {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = uuid.NewString()
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if cached, ok := h.selections.Get(id); ok {
		sel := cached.(*selection.Set)
		// Slide the expiry window on every touch.
		h.selections.Set(id, sel, cache.DefaultExpiration)
		return sel
	}
	sel := selection.New()
	h.selections.Set(id, sel, cache.DefaultExpiration)
	return sel
}

// userID returns the acting buyer. Authentication is stubbed; the header is
// honored when present so tests and future callers can scope their data.
func (h *Handler) userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return store.DefaultUserID
}
