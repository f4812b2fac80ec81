package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devops-backend/interfaces/http/rest"
	"devops-backend/internal/config"
	"devops-backend/internal/observability"
	"devops-backend/internal/store"
	"devops-backend/pkg/api"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	handler   http.Handler
	store     *store.Store
	collector *observability.Collector
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		ServerAddress:   ":8080",
		Environment:     "development",
		LogLevel:        "info",
		EnableCORS:      true,
		ShutdownTimeout: 30,
	}
	collector := observability.NewCollector()
	itemStore := store.New(collector.ItemsTotal)
	itemStore.Seed()

	router := rest.NewRouter(cfg, zap.NewNop(), collector, itemStore, time.Now())
	return &testApp{
		handler:   router.Setup(),
		store:     itemStore,
		collector: collector,
	}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeItem(t *testing.T, body string) api.ItemResponse {
	t.Helper()
	var item api.ItemResponse
	require.NoError(t, json.Unmarshal([]byte(body), &item))
	return item
}

func TestRoot_ReturnsServiceDescriptor(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	rec := app.do(t, http.MethodGet, "/", "")

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var info api.ServiceInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, config.ServiceName, info.Service)
	assert.Equal(t, config.Version, info.Version)
	assert.Equal(t, "healthy", info.Status)
	assert.Contains(t, info.Endpoints, "items")
}

func TestHealth_ReportsUptime(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	rec := app.do(t, http.MethodGet, "/health", "")

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.GreaterOrEqual(t, health.Uptime, 0.0)
	assert.Greater(t, health.Timestamp, 0.0)
}

func TestListItems_ReturnsSeededItems(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	rec := app.do(t, http.MethodGet, "/items", "")

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var items []api.ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 3)
}

func TestGetItem_RoundTripAndIdempotentReads(t *testing.T) {
	// Arrange
	app := newTestApp(t)
	created := decodeItem(t, app.do(t, http.MethodPost, "/items", `{"name":"Widget","price":9.99}`).Body.String())

	// Act
	first := app.do(t, http.MethodGet, "/items/"+created.ID, "")
	second := app.do(t, http.MethodGet, "/items/"+created.ID, "")

	// Assert
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, created, decodeItem(t, first.Body.String()))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGetItem_MissingIDReturns404Detail(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	rec := app.do(t, http.MethodGet, "/items/missing", "")

	// Assert
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Item not found"}`, rec.Body.String())
}

func TestCreateItem_ReturnsCreatedRecord(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	rec := app.do(t, http.MethodPost, "/items", `{"name":"Widget","price":9.99}`)

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeItem(t, rec.Body.String())
	_, err := uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, "", created.Description)
	assert.Equal(t, 9.99, created.Price)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, 4, app.store.Len())
}

func TestCreateItem_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "missing name", body: `{"price":9.99}`, wantCode: http.StatusUnprocessableEntity},
		{name: "missing price", body: `{"name":"Widget"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "price wrong type", body: `{"name":"Widget","price":"cheap"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "malformed json", body: `{"name":`, wantCode: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			app := newTestApp(t)

			// Act
			rec := app.do(t, http.MethodPost, "/items", tc.body)

			// Assert
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, 3, app.store.Len(), "store must not be mutated on rejected input")
		})
	}
}

func TestUpdateItem_FullReplacePreservesCreatedAt(t *testing.T) {
	// Arrange
	app := newTestApp(t)
	created := decodeItem(t, app.do(t, http.MethodPost, "/items", `{"name":"Widget","description":"v1","price":9.99}`).Body.String())

	// Act
	rec := app.do(t, http.MethodPut, "/items/"+created.ID, `{"name":"Gadget","price":19.99}`)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeItem(t, rec.Body.String())
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, "", updated.Description, "full-replace semantics drop the old description")
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	createdAt, err := time.Parse(time.RFC3339Nano, updated.CreatedAt)
	require.NoError(t, err)
	updatedAt, err := time.Parse(time.RFC3339Nano, updated.UpdatedAt)
	require.NoError(t, err)
	assert.False(t, updatedAt.Before(createdAt))
}

func TestUpdateItem_MissingIDReturns404(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	rec := app.do(t, http.MethodPut, "/items/missing", `{"name":"Gadget","price":19.99}`)

	// Assert
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Item not found"}`, rec.Body.String())
}

func TestDeleteItem_SeededScenario(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	deleted := app.do(t, http.MethodDelete, "/items/1", "")
	followUp := app.do(t, http.MethodGet, "/items/1", "")

	// Assert
	require.Equal(t, http.StatusNoContent, deleted.Code)
	assert.Empty(t, deleted.Body.String())
	assert.Equal(t, http.StatusNotFound, followUp.Code)
	assert.Equal(t, 2, app.store.Len())
	assert.Equal(t, float64(2), testutil.ToFloat64(app.collector.ItemsTotal))
}

func TestDeleteItem_MissingIDReturns404(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	rec := app.do(t, http.MethodDelete, "/items/missing", "")

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_ExposesRequestCounters(t *testing.T) {
	// Arrange
	app := newTestApp(t)
	app.do(t, http.MethodGet, "/items", "")

	// Act
	rec := app.do(t, http.MethodGet, "/metrics", "")

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "http_request_duration_seconds")
	assert.Contains(t, body, "items_total 3")
	assert.NotContains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestEveryResponseCarriesRequestIDAndSecurityHeaders(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/items"},
		{http.MethodGet, "/items/missing"},
		{http.MethodGet, "/metrics"},
	}

	for _, p := range paths {
		// Act
		rec := app.do(t, p.method, p.path, "")

		// Assert
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), "%s %s", p.method, p.path)
		assert.NotEmpty(t, rec.Header().Get("X-Response-Time"), "%s %s", p.method, p.path)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"), "%s %s", p.method, p.path)
	}
}

func TestItemsGaugeTracksStoreAcrossMutations(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	app.do(t, http.MethodPost, "/items", `{"name":"Widget","price":9.99}`)
	app.do(t, http.MethodDelete, "/items/2", "")

	// Assert
	assert.Equal(t, float64(app.store.Len()), testutil.ToFloat64(app.collector.ItemsTotal))
}
