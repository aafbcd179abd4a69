package apierror

import (
	"fmt"
	"net/http"
)

// APIError is a failure that already knows how it should be reported to
// the client. Message is the only part that crosses the API boundary;
// Code and any wrapped detail stay in server logs.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status}
}

func BadRequest(message string) *APIError {
	return New("BAD_REQUEST", message, http.StatusBadRequest)
}

func Unauthenticated(message string) *APIError {
	return New("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func Forbidden(message string) *APIError {
	return New("FORBIDDEN", message, http.StatusForbidden)
}

func NotFound(message string) *APIError {
	return New("NOT_FOUND", message, http.StatusNotFound)
}

// Conflict reports duplicate resources. The API contract returns these
// as 400, not the conventional 409.
func Conflict(message string) *APIError {
	return New("CONFLICT", message, http.StatusBadRequest)
}
