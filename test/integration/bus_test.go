//go:build integration

package integration

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-booking-api/internal/model"
)

func listBuses(t *testing.T, client *http.Client, serverURL string) []model.Bus {
	t.Helper()

	resp := doJSON(t, client, http.MethodGet, serverURL+"/api/buses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buses []model.Bus
	decodeBody(t, resp, &buses)
	return buses
}

func TestListBusesUnauthenticatedReturnsEmptyArray(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, newClient(t), http.MethodGet, server.URL+"/api/buses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)), "empty collection must be an array, not null")
}

func TestBusCrudRoundTrip(t *testing.T) {
	server := newTestServer(t)
	admin := newClient(t)
	register(t, admin, server.URL, "admin1", "admin")

	// Create
	created := doJSON(t, admin, http.MethodPost, server.URL+"/api/buses", busPayload())
	require.Equal(t, http.StatusCreated, created.StatusCode)

	var createdBody model.BusResponse
	decodeBody(t, created, &createdBody)
	require.NotEmpty(t, createdBody.Bus.ID)
	assert.Equal(t, "12A", createdBody.Bus.BusNumber)
	assert.Equal(t, 40, createdBody.Bus.Seats)

	buses := listBuses(t, newClient(t), server.URL)
	require.Len(t, buses, 1)
	assert.Equal(t, createdBody.Bus.ID, buses[0].ID)
	assert.Equal(t, "R1", buses[0].Route)
	assert.Equal(t, "A", buses[0].DeparturePoint)
	assert.Equal(t, "B", buses[0].DestinationPoint)
	assert.Equal(t, "08:00", buses[0].DepartureTime)

	// Update
	updatePayload := busPayload()
	updatePayload["seats"] = 55
	updatePayload["route"] = "R2"

	updated := doJSON(t, admin, http.MethodPut, server.URL+"/api/buses/"+createdBody.Bus.ID, updatePayload)
	require.Equal(t, http.StatusOK, updated.StatusCode)

	var updatedBody model.BusResponse
	decodeBody(t, updated, &updatedBody)
	assert.Equal(t, 55, updatedBody.Bus.Seats)

	buses = listBuses(t, newClient(t), server.URL)
	require.Len(t, buses, 1)
	assert.Equal(t, 55, buses[0].Seats)
	assert.Equal(t, "R2", buses[0].Route)

	// Delete
	deleted := doJSON(t, admin, http.MethodDelete, server.URL+"/api/buses/"+createdBody.Bus.ID, nil)
	require.Equal(t, http.StatusOK, deleted.StatusCode)

	assert.Empty(t, listBuses(t, newClient(t), server.URL))

	// Second delete of the same id
	again := doJSON(t, admin, http.MethodDelete, server.URL+"/api/buses/"+createdBody.Bus.ID, nil)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestCreateBusMissingFieldRejected(t *testing.T) {
	server := newTestServer(t)
	admin := newClient(t)
	register(t, admin, server.URL, "admin1", "admin")

	for _, field := range []string{"busNumber", "seats", "route", "departurePoint", "destinationPoint", "departureTime"} {
		payload := busPayload()
		delete(payload, field)

		resp := doJSON(t, admin, http.MethodPost, server.URL+"/api/buses", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing %s", field)
	}

	assert.Empty(t, listBuses(t, newClient(t), server.URL), "no partial inserts on validation failure")
}

func TestNonAdminGets403NotAnonymous401(t *testing.T) {
	server := newTestServer(t)
	user := newClient(t)
	register(t, user, server.URL, "regular", "user")

	create := doJSON(t, user, http.MethodPost, server.URL+"/api/buses", busPayload())
	assert.Equal(t, http.StatusForbidden, create.StatusCode)

	update := doJSON(t, user, http.MethodPut, server.URL+"/api/buses/some-id", busPayload())
	assert.Equal(t, http.StatusForbidden, update.StatusCode)

	del := doJSON(t, user, http.MethodDelete, server.URL+"/api/buses/some-id", nil)
	assert.Equal(t, http.StatusForbidden, del.StatusCode)
}

func TestAnonymousMutationsGet401(t *testing.T) {
	server := newTestServer(t)
	anon := newClient(t)

	create := doJSON(t, anon, http.MethodPost, server.URL+"/api/buses", busPayload())
	assert.Equal(t, http.StatusUnauthorized, create.StatusCode)

	update := doJSON(t, anon, http.MethodPut, server.URL+"/api/buses/some-id", busPayload())
	assert.Equal(t, http.StatusUnauthorized, update.StatusCode)

	del := doJSON(t, anon, http.MethodDelete, server.URL+"/api/buses/some-id", nil)
	assert.Equal(t, http.StatusUnauthorized, del.StatusCode)
}

func TestUpdateUnknownBusReturns404(t *testing.T) {
	server := newTestServer(t)
	admin := newClient(t)
	register(t, admin, server.URL, "admin1", "admin")

	resp := doJSON(t, admin, http.MethodPut, server.URL+"/api/buses/unknown-id", busPayload())
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body model.MessageResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Bus not found", body.Message)
}

func TestAdminMutationsAreAudited(t *testing.T) {
	server := newTestServer(t)
	admin := newClient(t)
	registered := register(t, admin, server.URL, "admin1", "admin")

	created := doJSON(t, admin, http.MethodPost, server.URL+"/api/buses", busPayload())
	require.Equal(t, http.StatusCreated, created.StatusCode)

	resp := doJSON(t, admin, http.MethodGet, server.URL+"/api/audit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []model.AuditEntry
	decodeBody(t, resp, &entries)
	require.NotEmpty(t, entries)
	assert.Equal(t, "bus.create", entries[0].Action)
	assert.Equal(t, registered.UserID, entries[0].Actor.UserID)
	assert.Equal(t, "ok", entries[0].Status)
}

func TestAuditEndpointRequiresAdmin(t *testing.T) {
	server := newTestServer(t)

	anon := doJSON(t, newClient(t), http.MethodGet, server.URL+"/api/audit", nil)
	assert.Equal(t, http.StatusUnauthorized, anon.StatusCode)

	user := newClient(t)
	register(t, user, server.URL, "regular", "user")
	resp := doJSON(t, user, http.MethodGet, server.URL+"/api/audit", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
