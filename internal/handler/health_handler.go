package handler

import (
	"context"
	"log/slog"
	"net/http"

	"bus-booking-api/internal/model"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check returns 200 while the database answers pings and 503 once it
// stops, so a load balancer can pull the instance.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, model.MessageResponse{Message: "Service unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "ok"})
}
