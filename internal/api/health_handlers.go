package api

import (
	"net/http"
	"time"

	"github.com/billtrace/billtrace-server/internal/http/response"
)

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse contains health check data.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
}

// handleHealthCheck reports server health with per-component checks.
// GET /health
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	start := time.Now()
	_, err := s.store.ListBills(r.Context())
	dbHealth := ComponentHealth{
		Status:  "healthy",
		Latency: time.Since(start).String(),
	}
	if err != nil {
		dbHealth.Status = "unhealthy"
		dbHealth.Message = err.Error()
		overall = "unhealthy"
	}
	components["database"] = dbHealth

	resp := HealthResponse{
		Status:     overall,
		Components: components,
	}

	status := http.StatusOK
	if overall != "healthy" {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, resp, s.logger.Logger)
}
