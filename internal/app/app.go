package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"bus-booking-api/internal/config"
	"bus-booking-api/internal/database"
	"bus-booking-api/internal/handler"
	"bus-booking-api/internal/middleware"
	"bus-booking-api/internal/repository"
	"bus-booking-api/internal/router"
	"bus-booking-api/internal/service"
	"bus-booking-api/internal/session"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	cleanupFuncs := []func(){db.Close}

	sessionStore, redisCleanup, err := newSessionStore(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	if redisCleanup != nil {
		cleanupFuncs = append(cleanupFuncs, redisCleanup)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	busRepo := repository.NewBusRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	if userCount, countErr := userRepo.Count(context.Background()); countErr != nil {
		slog.Warn("failed to count registered users", "error", countErr)
	} else {
		slog.Info("database ready", "registered_users", userCount)
	}

	codec := session.NewCodec(cfg.SessionSecret)
	cookieOpts := session.CookieOptions{Secure: cfg.SecureCookies}

	authService := service.NewAuthService(userRepo, sessionStore, cfg.SessionTTL)
	busService := service.NewBusService(busRepo)
	auditService := service.NewAuditService(auditRepo)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, codec)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:   handler.NewAuthHandler(authService, codec, cookieOpts),
		Bus:    handler.NewBusHandler(busService, auditService),
		Audit:  handler.NewAuditHandler(auditService),
		Health: handler.NewHealthHandler(db),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:       server,
		db:           db,
		cleanupFuncs: cleanupFuncs,
	}, nil
}

// newSessionStore picks redis when an address is configured and falls
// back to the in-process store otherwise.
func newSessionStore(cfg *config.Config) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info("REDIS_ADDR not set; using in-memory session store")
		return session.NewMemoryStore(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("redis session store connected", "addr", cfg.RedisAddr)
	return session.NewRedisStore(client), func() { _ = client.Close() }, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
