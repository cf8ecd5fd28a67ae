package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailmedia-backend/config"
	"retailmedia-backend/internal/model"
	"retailmedia-backend/internal/store"
)

// setupRouter builds a router over the seeded in-memory data source, with the
// rate limiter loosened so tests never trip it. Each test gets its own router
// so sessions and the response cache never leak between tests.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.RateLimitPerSec = 10000
	cfg.Server.RateLimitBurst = 10000

	return NewRouter(store.NewMemStore(0), nil, cfg, nil, nil)
}

func doJSON(router *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type pageBody struct {
	Items []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Status      string  `json:"status"`
		TypeLabel   string  `json:"typeLabel"`
		StatusLabel string  `json:"statusLabel"`
		StatusColor string  `json:"statusColor"`
	} `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func TestGetSpacesReturnsDecoratedCatalog(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "GET", "/api/spaces", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body pageBody
	decode(t, w, &body)

	assert.Equal(t, 10, body.Total)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 50, body.PageSize)
	assert.Equal(t, 1, body.TotalPages)
	require.Len(t, body.Items, 10)

	first := body.Items[0]
	assert.Equal(t, "space-001", first.ID)
	assert.Equal(t, "Ponta de Gôndola", first.TypeLabel)
	assert.Equal(t, "Disponível", first.StatusLabel)
	assert.Equal(t, "default", first.StatusColor)
}

func TestGetSpacesFiltering(t *testing.T) {
	router := setupRouter()

	testCases := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"type and price bucket combine with AND", "types=window&prices=high", []string{"space-003"}},
		{"search matches name case-insensitively", "search=vitrine", []string{"space-003", "space-009"}},
		{"city filter", "cities=Boa Vista", []string{"space-005", "space-007"}},
		{"multiple values within a category OR together", "types=checkout&types=entrance", []string{"space-005", "space-006"}},
		{"single-value type all is open", "type=all", []string{"space-001", "space-002", "space-003", "space-004", "space-005", "space-006", "space-007", "space-008", "space-009", "space-010"}},
		{"no match", "search=zeppelin", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, "GET", "/api/spaces?"+strings.ReplaceAll(tc.query, " ", "%20"), "", nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body pageBody
			decode(t, w, &body)

			got := make([]string, 0, len(body.Items))
			for _, item := range body.Items {
				got = append(got, item.ID)
			}
			if tc.wantIDs == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.wantIDs, got)
			}
		})
	}
}

func TestGetSpacesTeaserView(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "GET", "/api/spaces?view=teaser", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body pageBody
	decode(t, w, &body)
	assert.Equal(t, 6, body.PageSize)
	assert.Len(t, body.Items, 6)
	assert.Equal(t, 2, body.TotalPages)

	w = doJSON(router, "GET", "/api/spaces?view=teaser&page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Len(t, body.Items, 4)
	assert.Equal(t, 2, body.Page)
}

func TestGetSpace(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "GET", "/api/spaces/space-001", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ID        string `json:"id"`
		TypeLabel string `json:"typeLabel"`
	}
	decode(t, w, &body)
	assert.Equal(t, "space-001", body.ID)
	assert.Equal(t, "Ponta de Gôndola", body.TypeLabel)

	w = doJSON(router, "GET", "/api/spaces/space-999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStores(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "GET", "/api/stores", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body []struct {
		ID   string `json:"id"`
		City string `json:"city"`
	}
	decode(t, w, &body)
	assert.Len(t, body, 5)
	assert.Equal(t, "store-001", body[0].ID)
}

func TestGetFilterMetadata(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "GET", "/api/spaces/filters", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Types []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"types"`
		Cities []string `json:"cities"`
		Prices []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"prices"`
	}
	decode(t, w, &body)

	assert.Equal(t, []string{"Boa Vista", "Manaus", "Porto Velho"}, body.Cities)
	assert.Len(t, body.Types, 6)
	require.Len(t, body.Prices, 3)
	assert.Equal(t, "low", body.Prices[0].Value)
	assert.Contains(t, body.Prices[0].Label, "1.000")
}

func TestSelectionFlow(t *testing.T) {
	router := setupRouter()

	// First touch creates the session cookie.
	w := doJSON(router, "POST", "/api/selection", `{"spaceId":"space-001"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	var addBody struct {
		Summary struct {
			Count      int     `json:"count"`
			TotalPrice float64 `json:"totalPrice"`
		} `json:"summary"`
	}
	decode(t, w, &addBody)
	assert.Equal(t, 1, addBody.Summary.Count)
	assert.Equal(t, 8000.0, addBody.Summary.TotalPrice)

	// Adding the same space twice does not grow the cart.
	w = doJSON(router, "POST", "/api/selection", `{"spaceId":"space-001"}`, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &addBody)
	assert.Equal(t, 1, addBody.Summary.Count)

	w = doJSON(router, "POST", "/api/selection", `{"spaceId":"space-002"}`, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &addBody)
	assert.Equal(t, 2, addBody.Summary.Count)
	assert.Equal(t, 13500.0, addBody.Summary.TotalPrice)

	var getBody struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	w = doJSON(router, "GET", "/api/selection", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &getBody)
	require.Len(t, getBody.Items, 2)
	assert.Equal(t, "space-001", getBody.Items[0].ID)
	assert.Equal(t, "space-002", getBody.Items[1].ID)

	// Removing an absent ID is a no-op.
	w = doJSON(router, "DELETE", "/api/selection/space-999", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", "/api/selection/space-001", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &addBody)
	assert.Equal(t, 1, addBody.Summary.Count)

	w = doJSON(router, "DELETE", "/api/selection", "", cookies)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, "GET", "/api/selection", "", cookies)
	decode(t, w, &getBody)
	assert.Empty(t, getBody.Items)
}

func TestAddToSelectionRejectsUnavailableSpace(t *testing.T) {
	router := setupRouter()

	// space-005 is seeded as reserved.
	w := doJSON(router, "POST", "/api/selection", `{"spaceId":"space-005"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, "POST", "/api/selection", `{"spaceId":"space-999"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "POST", "/api/selection", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func reservationBody(spaceIDs []string, startOffset, days int) string {
	start := time.Now().UTC().AddDate(0, 0, startOffset)
	end := start.AddDate(0, 0, days)

	ids := ""
	if len(spaceIDs) > 0 {
		quoted := make([]string, len(spaceIDs))
		for i, id := range spaceIDs {
			quoted[i] = fmt.Sprintf("%q", id)
		}
		ids = fmt.Sprintf(`"spaceIds":[%s],`, strings.Join(quoted, ","))
	}

	return fmt.Sprintf(`{
		%s
		"startDate": %q,
		"endDate": %q,
		"companyName": "Tech Solutions LTDA",
		"contactName": "Maria Silva",
		"contactEmail": "maria@techsolutions.com",
		"contactPhone": "(92) 98765-4321"
	}`, ids, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

type createdBody struct {
	Reservation struct {
		ID            string   `json:"id"`
		Status        string   `json:"status"`
		PaymentStatus string   `json:"paymentStatus"`
		TotalPrice    float64  `json:"totalPrice"`
		SpaceIDs      []string `json:"spaceIds"`
	} `json:"reservation"`
}

func TestCreateReservationFromSession(t *testing.T) {
	router := setupRouter()

	// A detail read before checkout; the same read after checkout must see
	// the new status, not a cached one.
	w := doJSON(router, "GET", "/api/spaces/space-001", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var before struct {
		Status string `json:"status"`
	}
	decode(t, w, &before)
	require.Equal(t, "available", before.Status)

	w = doJSON(router, "POST", "/api/selection", `{"spaceId":"space-001"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = doJSON(router, "POST", "/api/reservations", reservationBody(nil, 1, 30), cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var body createdBody
	decode(t, w, &body)
	assert.NotEmpty(t, body.Reservation.ID)
	assert.Equal(t, "pending", body.Reservation.Status)
	assert.Equal(t, 8000.0, body.Reservation.TotalPrice)
	assert.Equal(t, []string{"space-001"}, body.Reservation.SpaceIDs)

	// Checkout consumed the cart.
	var getBody struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	w = doJSON(router, "GET", "/api/selection", "", cookies)
	decode(t, w, &getBody)
	assert.Empty(t, getBody.Items)

	// The space is off the market.
	w = doJSON(router, "GET", "/api/spaces/space-001", "", nil)
	var space struct {
		Status string `json:"status"`
	}
	decode(t, w, &space)
	assert.Equal(t, "reserved", space.Status)
}

func TestCreateReservationWithExplicitSpaces(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "POST", "/api/reservations", reservationBody([]string{"space-004"}, 1, 45), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var body createdBody
	decode(t, w, &body)
	assert.Equal(t, 950.0, body.Reservation.TotalPrice)

	// A second reservation for the same space conflicts.
	w = doJSON(router, "POST", "/api/reservations", reservationBody([]string{"space-004"}, 1, 45), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateReservationValidation(t *testing.T) {
	router := setupRouter()

	t.Run("empty selection", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reservations", reservationBody(nil, 1, 30), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lease below minimum", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reservations", reservationBody([]string{"space-002"}, 1, 29), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed dates", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reservations", `{"startDate":"01/09/2026","endDate":"01/10/2026"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("incomplete contact reports the bad fields", func(t *testing.T) {
		start := time.Now().UTC().AddDate(0, 0, 1)
		end := start.AddDate(0, 0, 30)
		body := fmt.Sprintf(`{
			"spaceIds": ["space-002"],
			"startDate": %q,
			"endDate": %q,
			"companyName": "Tech Solutions LTDA",
			"contactName": "Maria Silva",
			"contactEmail": "not-an-email",
			"contactPhone": "98765-4321"
		}`, start.Format("2006-01-02"), end.Format("2006-01-02"))

		w := doJSON(router, "POST", "/api/reservations", body, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Fields map[string]string `json:"fields"`
		}
		decode(t, w, &resp)
		assert.Contains(t, resp.Fields, "contactEmail")
		assert.Contains(t, resp.Fields, "contactPhone")
	})

	t.Run("unknown space", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reservations", reservationBody([]string{"space-999"}, 1, 30), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("reserved space", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reservations", reservationBody([]string{"space-005"}, 1, 30), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCancelReservation(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "POST", "/api/reservations", reservationBody([]string{"space-007"}, 1, 30), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created createdBody
	decode(t, w, &created)

	w = doJSON(router, "POST", "/api/reservations/"+created.Reservation.ID+"/cancel", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cancelled createdBody
	decode(t, w, &cancelled)
	assert.Equal(t, "cancelled", cancelled.Reservation.Status)
	assert.Equal(t, "refunded", cancelled.Reservation.PaymentStatus)

	// The covered space went back on the market.
	w = doJSON(router, "GET", "/api/spaces/space-007", "", nil)
	var space struct {
		Status string `json:"status"`
	}
	decode(t, w, &space)
	assert.Equal(t, "available", space.Status)

	// Cancelling twice conflicts, cancelling the unknown is 404.
	w = doJSON(router, "POST", "/api/reservations/"+created.Reservation.ID+"/cancel", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, "POST", "/api/reservations/res-999/cancel", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReservations(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "GET", "/api/reservations", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body []struct {
		ID          string `json:"id"`
		StatusLabel string `json:"statusLabel"`
	}
	decode(t, w, &body)
	assert.Len(t, body, 4)

	// Another buyer sees nothing.
	wOther := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/reservations", nil)
	req.Header.Set("X-User-ID", "user-002")
	router.ServeHTTP(wOther, req)
	require.Equal(t, http.StatusOK, wOther.Code)
	assert.JSONEq(t, "[]", wOther.Body.String())
}

func TestGetReservationStats(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "GET", "/api/reservations/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total          int            `json:"total"`
		ByStatus       map[string]int `json:"byStatus"`
		TotalInvested  float64        `json:"totalInvested"`
		ActiveExposure int            `json:"activeExposure"`
	}
	decode(t, w, &body)

	assert.Equal(t, 4, body.Total)
	assert.Equal(t, 1, body.ByStatus["pending"])
	assert.Equal(t, 1, body.ByStatus["cancelled"])
	// The cancelled reservation does not count toward investment.
	assert.Equal(t, 21500.0, body.TotalInvested)
	// space-001 (pending) + space-008 (confirmed).
	assert.Equal(t, 8100, body.ActiveExposure)
}

// Many tabs on one session fire interleaved cart mutations; the shared
// selection set must survive them and stay internally consistent.
func TestSelectionHandlesConcurrentRequests(t *testing.T) {
	router := setupRouter()

	w := doJSON(router, "POST", "/api/selection", `{"spaceId":"space-001"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	var wg sync.WaitGroup
	for i := 0; i < 150; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			doJSON(router, "POST", "/api/selection", `{"spaceId":"space-002"}`, cookies)
		}()
		go func() {
			defer wg.Done()
			doJSON(router, "DELETE", "/api/selection/space-002", "", cookies)
		}()
	}
	wg.Wait()

	w = doJSON(router, "GET", "/api/selection", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Summary struct {
			Count int `json:"count"`
		} `json:"summary"`
	}
	decode(t, w, &body)
	assert.Equal(t, len(body.Items), body.Summary.Count)
	assert.Contains(t, []int{1, 2}, body.Summary.Count)
}

func sessionRequest(id string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/selection", nil)
	c.Request.AddCookie(&http.Cookie{Name: sessionCookie, Value: id})
	return w, c
}

func TestSessionRegistryEvictsIdleCarts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store.NewMemStore(0), nil, config.Default(), nil, nil)
	h.selections = cache.New(20*time.Millisecond, time.Minute)

	_, c := sessionRequest("cart-1")
	h.session(c).Add(model.Space{ID: "space-001", Price: 100})

	// Within the window the same cart comes back.
	_, c = sessionRequest("cart-1")
	assert.Equal(t, 1, h.session(c).Len())

	// An idle cart is evicted; the session starts over empty.
	time.Sleep(50 * time.Millisecond)
	_, c = sessionRequest("cart-1")
	assert.Equal(t, 0, h.session(c).Len())
}

func TestCatalogResponsesAreCached(t *testing.T) {
	router := setupRouter()

	first := doJSON(router, "GET", "/api/spaces?search=vitrine", "", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(router, "GET", "/api/spaces?search=vitrine", "", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}
