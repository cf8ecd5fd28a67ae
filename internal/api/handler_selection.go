package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retailmedia-backend/internal/notification"
	"retailmedia-backend/internal/reservation"
)

type addToSelectionRequest struct {
	SpaceID string `json:"spaceId" binding:"required"`
}

// GetSelection handles GET /api/selection: the session's cart with its
// derived summary.
func (h *Handler) GetSelection(c *gin.Context) {
	sel := h.session(c)
	spaces := sel.Spaces()
	items := make([]spaceResponse, 0, len(spaces))
	for _, s := range spaces {
		items = append(items, newSpaceResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{
		"items":   items,
		"summary": sel.Aggregate(),
	})
}

// AddToSelection handles POST /api/selection. The availability gate lives
// here, at the call site, before the space reaches the set.
func (h *Handler) AddToSelection(c *gin.Context) {
	var req addToSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	space, err := h.source.GetSpace(c.Request.Context(), req.SpaceID)
	if err != nil {
		abortNotFoundOrInternal(c, err, "Space not found")
		return
	}

	if err := reservation.CheckAvailable(space); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"message": notification.ValidationFailed(err),
		})
		return
	}

	sel := h.session(c)
	sel.Add(*space)
	c.JSON(http.StatusOK, gin.H{
		"message": notification.AddedToSelection(space),
		"summary": sel.Aggregate(),
	})
}

// RemoveFromSelection handles DELETE /api/selection/{space_id}. Removing an
// absent ID is a no-op, not an error.
func (h *Handler) RemoveFromSelection(c *gin.Context) {
	spaceID := c.Param("space_id")
	sel := h.session(c)
	sel.Remove(spaceID)
	c.JSON(http.StatusOK, gin.H{
		"message": notification.RemovedFromSelection(spaceID),
		"summary": sel.Aggregate(),
	})
}

// ClearSelection handles DELETE /api/selection.
func (h *Handler) ClearSelection(c *gin.Context) {
	sel := h.session(c)
	sel.Clear()
	c.Status(http.StatusNoContent)
}
