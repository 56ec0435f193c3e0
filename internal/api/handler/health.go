package handler

import (
	"context"
	"net/http"

	"github.com/venapictures/studio/internal/api/middleware"
	"github.com/venapictures/studio/internal/api/response"
)

// DBPinger checks database connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      DBPinger
	version string
	backend string
}

// NewHealthHandler creates a new HealthHandler. db is nil on the in-memory
// backend.
func NewHealthHandler(db DBPinger, version, backend string) *HealthHandler {
	return &HealthHandler{db: db, version: version, backend: backend}
}

type databaseStatus struct {
	Backend   string `json:"backend"`
	Connected bool   `json:"connected"`
}

type healthData struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Database databaseStatus `json:"database"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	status := "healthy"
	connected := true
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			connected = false
			status = "degraded"
		}
	}

	response.Success(w, http.StatusOK, healthData{
		Status:   status,
		Version:  h.version,
		Database: databaseStatus{Backend: h.backend, Connected: connected},
	}, requestID)
}
