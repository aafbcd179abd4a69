package middleware

import (
	"context"
	"net/http"
	"time"

	"bus-booking-api/internal/session"
)

type sessionContextKeyType struct{}

var sessionContextKey = sessionContextKeyType{}

// SessionFromContext returns the session attached by RequireAuth.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	return sess, ok
}

type AuthMiddleware struct {
	store session.Store
	codec session.Codec
}

func NewAuthMiddleware(store session.Store, codec session.Codec) *AuthMiddleware {
	return &AuthMiddleware{store: store, codec: codec}
}

// RequireAuth rejects requests without a valid, unexpired session and
// attaches the session to the request context otherwise.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			writeMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		id, err := m.codec.Decode(cookie.Value)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		sess, err := m.store.Get(r.Context(), id)
		if err != nil || sess == nil {
			writeMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		if sess.Expired(time.Now()) {
			_ = m.store.Delete(r.Context(), id)
			writeMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin runs after RequireAuth. A missing role is treated as
// non-admin, so the failure here is always 403, never 401.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok || sess.Role != "admin" {
			writeMessage(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
