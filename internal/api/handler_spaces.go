package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"retailmedia-backend/internal/catalog"
	"retailmedia-backend/internal/model"
)

// spaceResponse decorates a space with its display labels so the front end
// never needs its own lookup tables.
type spaceResponse struct {
	model.Space
	TypeLabel   string `json:"typeLabel"`
	StatusLabel string `json:"statusLabel"`
	StatusColor string `json:"statusColor"`
}

func newSpaceResponse(s model.Space) spaceResponse {
	return spaceResponse{
		Space:       s,
		TypeLabel:   s.Type.Label(),
		StatusLabel: s.Status.Label(),
		StatusColor: s.Status.BadgeColor(),
	}
}

// spacesPage is the paginated catalog response.
type spacesPage struct {
	Items      []spaceResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// GetSpaces handles GET /api/spaces. Filter predicates come from the query
// string; repeated parameters form the multi-select allow-lists. `view=teaser`
// selects the smaller home-page page size.
func (h *Handler) GetSpaces(c *gin.Context) {
	spaces, err := h.source.GetSpaces(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve spaces"})
		return
	}

	state := catalog.FilterState{
		Search:  c.Query("search"),
		Type:    c.Query("type"),
		Types:   c.QueryArray("types"),
		Cities:  c.QueryArray("cities"),
		Sectors: c.QueryArray("sectors"),
		Stores:  c.QueryArray("stores"),
		Prices:  c.QueryArray("prices"),
		Thresholds: catalog.Thresholds{
			LowMax:  h.cfg.Catalog.PriceLowMax,
			HighMin: h.cfg.Catalog.PriceHighMin,
		},
	}

	filtered := catalog.Filter(spaces, state)

	pageSize := h.cfg.Catalog.PageSize
	if c.Query("view") == "teaser" {
		pageSize = h.cfg.Catalog.TeaserPageSize
	}

	// Absent or malformed page numbers mean page 1, so a fresh filter query
	// never lands on a stale page.
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	items := catalog.Page(filtered, pageSize, page)
	resp := spacesPage{
		Items:      make([]spaceResponse, 0, len(items)),
		Total:      len(filtered),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: catalog.TotalPages(filtered, pageSize),
	}
	for _, s := range items {
		resp.Items = append(resp.Items, newSpaceResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

// GetSpace handles GET /api/spaces/{space_id}.
func (h *Handler) GetSpace(c *gin.Context) {
	space, err := h.source.GetSpace(c.Request.Context(), c.Param("space_id"))
	if err != nil {
		abortNotFoundOrInternal(c, err, "Space not found")
		return
	}
	c.JSON(http.StatusOK, newSpaceResponse(*space))
}

// filterOption pairs a filter value with its display label.
type filterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// GetFilterMetadata handles GET /api/spaces/filters: the distinct values of
// every filterable dimension, derived from the current catalog.
func (h *Handler) GetFilterMetadata(c *gin.Context) {
	spaces, err := h.source.GetSpaces(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve spaces"})
		return
	}

	types := make(map[model.SpaceType]struct{})
	cities := make(map[string]struct{})
	sectors := make(map[string]struct{})
	stores := make(map[string]struct{})
	for _, s := range spaces {
		types[s.Type] = struct{}{}
		cities[s.City] = struct{}{}
		sectors[string(s.Sector)] = struct{}{}
		stores[s.StoreName] = struct{}{}
	}

	typeOptions := make([]filterOption, 0, len(types))
	for _, t := range model.SpaceTypes() {
		if _, ok := types[t]; ok {
			typeOptions = append(typeOptions, filterOption{Value: string(t), Label: t.Label()})
		}
	}

	thresholds := catalog.Thresholds{
		LowMax:  h.cfg.Catalog.PriceLowMax,
		HighMin: h.cfg.Catalog.PriceHighMin,
	}
	priceOptions := []filterOption{
		{Value: string(catalog.BucketLow), Label: catalog.BucketLow.Label(thresholds)},
		{Value: string(catalog.BucketMedium), Label: catalog.BucketMedium.Label(thresholds)},
		{Value: string(catalog.BucketHigh), Label: catalog.BucketHigh.Label(thresholds)},
	}

	c.JSON(http.StatusOK, gin.H{
		"types":   typeOptions,
		"cities":  sortedKeys(cities),
		"sectors": sortedKeys(sectors),
		"stores":  sortedKeys(stores),
		"prices":  priceOptions,
	})
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
