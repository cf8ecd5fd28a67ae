package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"retailmedia-backend/internal/store"
)

// GetStores handles GET /api/stores.
func (h *Handler) GetStores(c *gin.Context) {
	stores, err := h.source.GetStores(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// abortNotFoundOrInternal maps store.ErrNotFound to 404 and everything else
// to 500.
func abortNotFoundOrInternal(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
