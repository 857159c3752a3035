package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// HealthHandler handles status and health requests
type HealthHandler struct {
	service HealthServiceInterface
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service HealthServiceInterface, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// Status handles GET /
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.service.Status())
}

// HealthCheck handles GET /health. A degraded service answers 503 so load
// balancers stop routing to it.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := h.service.HealthCheck(r.Context())

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
		h.logger.WarnContext(r.Context(), "Health check degraded",
			slog.Any("checks", resp.Checks))
	}
	writeJSON(w, r, status, resp)
}

// Version handles GET /version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.service.Version())
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
