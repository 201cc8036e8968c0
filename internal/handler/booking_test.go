package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingFlow(t *testing.T) {
	e := newTestApp(t)
	_, owner := register(t, e, "owner")
	id, attendee := register(t, e, "attendee")
	evID := createEvent(t, e, owner, "Concert", "2026-09-01")

	rec := doJSON(t, e, http.MethodPost, "/v1/bookings", attendee, map[string]any{"event_id": evID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, id, body["user_id"])
	assert.Equal(t, evID, body["event_id"])

	// The listing returns the booked events themselves.
	rec = doJSON(t, e, http.MethodGet, "/v1/bookings", attendee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode(t, rec)["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "Concert", events[0].(map[string]any)["event_name"])

	rec = doJSON(t, e, http.MethodDelete, "/v1/bookings/"+evID, attendee, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/v1/bookings", attendee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["events"])

	rec = doJSON(t, e, http.MethodDelete, "/v1/bookings/"+evID, attendee, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingDuplicate(t *testing.T) {
	e := newTestApp(t)
	_, owner := register(t, e, "owner")
	_, attendee := register(t, e, "attendee")
	evID := createEvent(t, e, owner, "Concert", "2026-09-01")

	rec := doJSON(t, e, http.MethodPost, "/v1/bookings", attendee, map[string]any{"event_id": evID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/v1/bookings", attendee, map[string]any{"event_id": evID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The duplicate attempt did not add a second row.
	rec = doJSON(t, e, http.MethodGet, "/v1/bookings", attendee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["events"].([]any), 1)
}

func TestBookingBadRequests(t *testing.T) {
	e := newTestApp(t)
	_, attendee := register(t, e, "attendee")

	rec := doJSON(t, e, http.MethodPost, "/v1/bookings", attendee, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/v1/bookings", attendee, map[string]any{"event_id": "no-such-event"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// A cancelled booking removes only the caller's pair; another user's
// booking of the same event stays.
func TestBookingIsolatedPerUser(t *testing.T) {
	e := newTestApp(t)
	_, owner := register(t, e, "owner")
	_, a := register(t, e, "usera")
	_, b := register(t, e, "userb")
	evID := createEvent(t, e, owner, "Concert", "2026-09-01")

	require.Equal(t, http.StatusCreated,
		doJSON(t, e, http.MethodPost, "/v1/bookings", a, map[string]any{"event_id": evID}).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(t, e, http.MethodPost, "/v1/bookings", b, map[string]any{"event_id": evID}).Code)

	// b has no claim on a's booking beyond their own pair.
	assert.Equal(t, http.StatusNoContent,
		doJSON(t, e, http.MethodDelete, "/v1/bookings/"+evID, b, nil).Code)

	rec := doJSON(t, e, http.MethodGet, "/v1/bookings", a, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["events"].([]any), 1)
}
