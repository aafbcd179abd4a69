package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows exactly one configured browser origin, with credentials
// enabled so the session cookie travels on cross-origin requests.
func CORS(origin string) func(http.Handler) http.Handler {
	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		MaxAge:           3600,
		AllowCredentials: true,
	})

	return handler.Handler
}
