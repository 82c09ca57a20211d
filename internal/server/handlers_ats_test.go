package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-pulse/internal/types"
)

func TestATSWebhook_NormalizesDefaults(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/ats/webhook", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["event_id"])
	assert.Equal(t, body["event_id"], body["idempotency_key"],
		"idempotency key falls back to the event id")
}

func TestATSWebhook_IdempotencyHeader(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ats/webhook",
		strings.NewReader(`{"candidate_token":"cand-9","stage":"panel"}`))
	req.Header.Set("X-Idempotency-Key", "idem-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "idem-42", body["idempotency_key"])
}

func TestATSWebhook_MalformedBodyStillAccepted(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ats/webhook", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestATSWebhook_ForwardsDownstream(t *testing.T) {
	var forwarded atomic.Int32
	var received types.ATSEvent
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer downstream.Close()

	s, err := New(Config{Port: 0, ATSWebhookURL: downstream.URL})
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodPost, "/api/ats/webhook", map[string]any{
		"event":           "candidate_feedback_invite",
		"stage":           "recruiter",
		"role_family":     "sales",
		"candidate_token": "cand-7",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int32(1), forwarded.Load())
	assert.Equal(t, "v1", received.SchemaVersion)
	assert.Equal(t, "cand-7", received.CandidateToken)
	assert.Equal(t, "sales", received.RoleFamily)
}

func TestATSWebhook_ForwardFailureStillOK(t *testing.T) {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer downstream.Close()

	s, err := New(Config{Port: 0, ATSWebhookURL: downstream.URL})
	require.NoError(t, err)

	// Delivery failure dead-letters the event; the caller still gets 200
	rec := doJSON(t, s, http.MethodPost, "/api/ats/webhook", map[string]any{
		"candidate_token": "cand-8",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNormalizeATSEvent(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	event := normalizeATSEvent(atsWebhookBody{}, "", now)
	assert.Equal(t, types.ATSEventSchemaVersion, event.SchemaVersion)
	assert.Equal(t, types.DefaultATSEventName, event.Event)
	assert.Equal(t, "unknown", event.Stage)
	assert.Equal(t, "unknown", event.RoleFamily)
	assert.Equal(t, "anon", event.CandidateToken)
	assert.Equal(t, now.Format(time.RFC3339), event.SentAt)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, event.EventID, event.IdempotencyKey)
	assert.Equal(t, "2026-02-10", event.DayKey())
}

func TestNormalizeATSEvent_ExplicitValues(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	event := normalizeATSEvent(atsWebhookBody{
		ID:             "evt-1",
		Event:          "candidate_feedback_reminder",
		Stage:          "offer",
		RoleFamily:     "engineering",
		CandidateToken: "cand-1",
		SentAt:         "2026-02-09T08:00:00Z",
		Source:         "pulse",
	}, "idem-1", now)

	assert.Equal(t, "evt-1", event.EventID)
	assert.Equal(t, "idem-1", event.IdempotencyKey)
	assert.Equal(t, "candidate_feedback_reminder", event.Event)
	assert.Equal(t, "offer", event.Stage)
	assert.Equal(t, "2026-02-09T08:00:00Z", event.SentAt)
	assert.Equal(t, "pulse", event.Source)
}

func TestDLQRetry_NoDatabase(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/ats/dlq/retry", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDLQStats_NoDatabase(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/ats/dlq/stats", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
