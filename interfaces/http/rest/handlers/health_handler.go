// Package handlers implements the HTTP endpoint handlers.
package handlers

import (
	"net/http"
	"time"

	"devops-backend/internal/config"
	"devops-backend/pkg/api"
)

// HealthHandler serves the service descriptor and health endpoints.
type HealthHandler struct {
	startTime time.Time
}

// NewHealthHandler creates a health handler anchored at the process start time.
func NewHealthHandler(startTime time.Time) *HealthHandler {
	return &HealthHandler{startTime: startTime}
}

// Root handles GET / with a static service descriptor.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, api.ServiceInfoResponse{
		Service: config.ServiceName,
		Version: config.Version,
		Status:  "healthy",
		Endpoints: map[string]string{
			"root":    "GET /",
			"health":  "GET /health",
			"metrics": "GET /metrics",
			"items":   "GET /items, POST /items, GET /items/{id}, PUT /items/{id}, DELETE /items/{id}",
		},
	})
}

// Health handles GET /health. It always succeeds while the process is alive.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	api.Success(w, http.StatusOK, api.HealthResponse{
		Status:    "healthy",
		Timestamp: float64(now.UnixMilli()) / 1000,
		Uptime:    now.Sub(h.startTime).Round(10 * time.Millisecond).Seconds(),
		Version:   config.Version,
	})
}
