package handler

import (
	"encoding/json"
	"net/http"

	"bus-booking-api/internal/model"
	"bus-booking-api/internal/service"
	"bus-booking-api/internal/session"
	"bus-booking-api/pkg/apierror"
)

type AuthHandler struct {
	service    *service.AuthService
	codec      session.Codec
	cookieOpts session.CookieOptions
}

func NewAuthHandler(svc *service.AuthService, codec session.Codec, cookieOpts session.CookieOptions) *AuthHandler {
	return &AuthHandler{service: svc, codec: codec, cookieOpts: cookieOpts}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	user, sess, err := h.service.Register(r.Context(), payload.Username, payload.Password, payload.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	session.SetCookie(w, h.codec.Encode(sess.ID), sess.ExpiresAt, h.cookieOpts)
	writeJSON(w, http.StatusCreated, model.AuthResponse{
		Message: "User registered successfully",
		Role:    user.Role,
		UserID:  user.ID,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	user, sess, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	session.SetCookie(w, h.codec.Encode(sess.ID), sess.ExpiresAt, h.cookieOpts)
	writeJSON(w, http.StatusOK, model.AuthResponse{
		Message: "Login successful",
		Role:    user.Role,
		UserID:  user.ID,
	})
}

// Logout destroys the server-side session and clears the cookie. It is
// idempotent: a request without a usable cookie still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if id, decodeErr := h.codec.Decode(cookie.Value); decodeErr == nil {
			if err := h.service.Logout(r.Context(), id); err != nil {
				writeError(w, err)
				return
			}
		}
	}

	session.ClearCookie(w, h.cookieOpts)
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Logged out successfully"})
}
