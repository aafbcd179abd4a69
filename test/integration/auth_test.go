//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-booking-api/internal/model"
)

func TestRegisterTwiceSecondAttemptRejected(t *testing.T) {
	server := newTestServer(t)

	first := register(t, newClient(t), server.URL, "alice", "")
	assert.Equal(t, "user", first.Role)

	resp := doJSON(t, newClient(t), http.MethodPost, server.URL+"/register", map[string]string{
		"username": "alice",
		"password": "Other123!",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body model.MessageResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "User already exists", body.Message)
}

func TestRegisterInvalidRoleDefaultsToUser(t *testing.T) {
	server := newTestServer(t)

	parsed := register(t, newClient(t), server.URL, "bob", "superuser")
	assert.Equal(t, "user", parsed.Role)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	server := newTestServer(t)
	register(t, newClient(t), server.URL, "alice", "")

	wrongPass := doJSON(t, newClient(t), http.MethodPost, server.URL+"/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)

	unknownUser := doJSON(t, newClient(t), http.MethodPost, server.URL+"/login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)

	var a, b model.MessageResponse
	decodeBody(t, wrongPass, &a)
	decodeBody(t, unknownUser, &b)
	assert.Equal(t, a.Message, b.Message)
	assert.NotEmpty(t, a.Message)
}

func TestLoginSuccessReturnsRoleAndUserID(t *testing.T) {
	server := newTestServer(t)
	registered := register(t, newClient(t), server.URL, "carol", "admin")

	client := newClient(t)
	resp := doJSON(t, client, http.MethodPost, server.URL+"/login", map[string]string{
		"username": "carol",
		"password": "Password123!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed model.AuthResponse
	decodeBody(t, resp, &parsed)
	assert.Equal(t, "admin", parsed.Role)
	assert.Equal(t, registered.UserID, parsed.UserID)
}

func TestLogoutDestroysSession(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t)
	register(t, client, server.URL, "admin1", "admin")

	resp := doJSON(t, client, http.MethodPost, server.URL+"/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The session is gone server-side: admin operations now fail with 401.
	created := doJSON(t, client, http.MethodPost, server.URL+"/api/buses", busPayload())
	assert.Equal(t, http.StatusUnauthorized, created.StatusCode)
}

func TestLogoutWithoutSessionStillSucceeds(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, newClient(t), http.MethodPost, server.URL+"/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
