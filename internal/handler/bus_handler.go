package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bus-booking-api/internal/middleware"
	"bus-booking-api/internal/model"
	"bus-booking-api/internal/service"
	"bus-booking-api/pkg/apierror"
)

type BusHandler struct {
	service *service.BusService
	audit   *service.AuditService
}

func NewBusHandler(svc *service.BusService, audit *service.AuditService) *BusHandler {
	return &BusHandler{service: svc, audit: audit}
}

func (h *BusHandler) List(w http.ResponseWriter, r *http.Request) {
	buses, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buses)
}

func (h *BusHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.BusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	bus, err := h.service.Create(r.Context(), payload)
	h.recordAudit(r, "bus.create", bus.ID, err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.BusResponse{Message: "Bus added successfully", Bus: bus})
}

func (h *BusHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id := chi.URLParam(r, "id")

	var payload model.BusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	bus, err := h.service.Update(r.Context(), id, payload)
	h.recordAudit(r, "bus.update", id, err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BusResponse{Message: "Bus updated successfully", Bus: bus})
}

func (h *BusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.service.Delete(r.Context(), id)
	h.recordAudit(r, "bus.delete", id, err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Bus deleted successfully"})
}

func (h *BusHandler) recordAudit(r *http.Request, action string, resource string, opErr error) {
	if h.audit == nil {
		return
	}

	entry := model.AuditEntry{Action: action, Resource: resource}
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		entry.Actor = model.AuditActor{
			UserID:   sess.UserID,
			Username: sess.Username,
			Role:     sess.Role,
			IP:       r.RemoteAddr,
		}
	}
	if opErr != nil {
		entry.Status = "failed"
		entry.Error = opErr.Error()
	}

	h.audit.Record(r.Context(), entry)
}
