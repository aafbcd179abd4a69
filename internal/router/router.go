package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bus-booking-api/internal/config"
	"bus-booking-api/internal/handler"
	"bus-booking-api/internal/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Bus    *handler.BusHandler
	Audit  *handler.AuditHandler
	Health *handler.HealthHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", handlers.Health.Check)

	r.Post("/register", handlers.Auth.Register)
	r.Post("/login", handlers.Auth.Login)
	r.Post("/logout", handlers.Auth.Logout)

	r.Route("/api/buses", func(api chi.Router) {
		api.Get("/", handlers.Bus.List)

		admin := api.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
		admin.Post("/", handlers.Bus.Create)
		admin.Put("/{id}", handlers.Bus.Update)
		admin.Delete("/{id}", handlers.Bus.Delete)
	})

	r.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).
		Get("/api/audit", handlers.Audit.List)

	return r
}
