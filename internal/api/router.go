package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"retailmedia-backend/config"
	"retailmedia-backend/internal/mw"
	"retailmedia-backend/internal/notification"
	"retailmedia-backend/internal/store"
)

// NewRouter creates and configures a new Gin router. db may be nil (memory
// mode); the push subscription routes are only registered when it is present.
func NewRouter(source store.DataSource, db *gorm.DB, cfg *config.Config, webpushOptions *webpush.Options, pool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(source, db, cfg, webpushOptions, pool)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Catalog listings are cheap to cache; the detail view is not cached
		// because its status must reflect reserves and cancels immediately.
		api.GET("/spaces", caching, handler.GetSpaces)
		api.GET("/spaces/filters", caching, handler.GetFilterMetadata)
		api.GET("/spaces/:space_id", handler.GetSpace)
		api.GET("/stores", caching, handler.GetStores)

		// Selection (cart) is per-session mutable state; never cached.
		api.GET("/selection", handler.GetSelection)
		api.POST("/selection", handler.AddToSelection)
		api.DELETE("/selection/:space_id", handler.RemoveFromSelection)
		api.DELETE("/selection", handler.ClearSelection)

		api.GET("/reservations", handler.GetReservations)
		api.GET("/reservations/stats", handler.GetReservationStats)
		api.POST("/reservations", handler.CreateReservation)
		api.POST("/reservations/:reservation_id/cancel", handler.CancelReservation)

		if db != nil {
			api.GET("/subscriptions", handler.GetSubscription)
			api.PUT("/subscriptions", handler.PutSubscription)
			api.DELETE("/subscriptions", handler.DeleteSubscription)
			api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
		}
	}

	return r
}
