package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bus-booking-api/internal/model"
	"bus-booking-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps a failure to its status code and a generic
// `{message}` body. Anything unclassified becomes a 500 with the
// detail kept in server logs only.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
	case errors.Is(err, model.ErrBusNotFound):
		status = http.StatusNotFound
		message = "Bus not found"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusBadRequest
		message = "User already exists"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.MessageResponse{Message: message})
}
