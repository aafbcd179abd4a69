//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"bus-booking-api/internal/config"
	"bus-booking-api/internal/handler"
	"bus-booking-api/internal/middleware"
	"bus-booking-api/internal/model"
	"bus-booking-api/internal/router"
	"bus-booking-api/internal/service"
	"bus-booking-api/internal/session"
)

// memUserRepo is an in-memory stand-in for the postgres user
// repository, with the same uniqueness semantics.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]model.User{}}
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[strings.ToLower(strings.TrimSpace(username))]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) Create(_ context.Context, u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(u.Username)
	if _, exists := m.users[key]; exists {
		return model.ErrUserAlreadyExists
	}
	m.users[key] = u
	return nil
}

type memBusRepo struct {
	mu    sync.Mutex
	buses map[string]model.Bus
	order []string
}

func newMemBusRepo() *memBusRepo {
	return &memBusRepo{buses: map[string]model.Bus{}}
}

func (m *memBusRepo) List(context.Context) ([]model.Bus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Bus, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.buses[id])
	}
	return out, nil
}

func (m *memBusRepo) Create(_ context.Context, b model.Bus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buses[b.ID] = b
	m.order = append(m.order, b.ID)
	return nil
}

func (m *memBusRepo) Update(_ context.Context, b model.Bus) (model.Bus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.buses[b.ID]
	if !exists {
		return model.Bus{}, model.ErrBusNotFound
	}
	b.CreatedAt = existing.CreatedAt
	m.buses[b.ID] = b
	return b, nil
}

func (m *memBusRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.buses[id]; !exists {
		return model.ErrBusNotFound
	}
	delete(m.buses, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type memAuditRepo struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func (m *memAuditRepo) Log(_ context.Context, entry model.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	return nil
}

func (m *memAuditRepo) ListRecent(_ context.Context, limit int) ([]model.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.AuditEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

// healthyDB stands in for the postgres pool behind /health.
type healthyDB struct{}

func (healthyDB) Health(context.Context) error { return nil }

// newTestServer wires the real router, middleware, services and a
// miniredis-backed session store over in-memory repositories.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessionStore := session.NewRedisStore(client)
	codec := session.NewCodec("test-secret")
	cookieOpts := session.CookieOptions{}

	authService := service.NewAuthService(newMemUserRepo(), sessionStore, time.Hour)
	busService := service.NewBusService(newMemBusRepo())
	auditService := service.NewAuditService(&memAuditRepo{})

	cfg := &config.Config{
		ServerPort:       "8080",
		SessionSecret:    "test-secret",
		SessionTTL:       time.Hour,
		CORSOrigin:       "http://localhost:3000",
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, codec)
	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:   handler.NewAuthHandler(authService, codec, cookieOpts),
		Bus:    handler.NewBusHandler(busService, auditService),
		Audit:  handler.NewAuditHandler(auditService),
		Health: handler.NewHealthHandler(healthyDB{}),
	})

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)
	return server
}

// newClient returns an HTTP client with a cookie jar, so the session
// cookie survives across requests like a browser.
func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method string, url string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func register(t *testing.T, client *http.Client, serverURL string, username string, role string) model.AuthResponse {
	t.Helper()

	resp := doJSON(t, client, http.MethodPost, serverURL+"/register", map[string]string{
		"username": username,
		"password": "Password123!",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var parsed model.AuthResponse
	decodeBody(t, resp, &parsed)
	require.NotEmpty(t, parsed.UserID)
	return parsed
}

func busPayload() map[string]any {
	return map[string]any{
		"busNumber":        "12A",
		"seats":            40,
		"route":            "R1",
		"departurePoint":   "A",
		"destinationPoint": "B",
		"departureTime":    "08:00",
	}
}
