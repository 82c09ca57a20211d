package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-pulse/internal/scoring"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{Port: 0, RateLimitEnabled: false})
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disabled", body["persistence"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/score", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/score", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitHeaders(t *testing.T) {
	s, err := New(Config{Port: 0, RateLimitEnabled: true})
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	rec := doJSON(t, s, http.MethodPost, "/api/snapshot", map[string]any{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitExceeded(t *testing.T) {
	s, err := New(Config{Port: 0, RateLimitEnabled: true})
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	// DLQ retry has the smallest burst; exhaust it
	var last *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		last = doJSON(t, s, http.MethodPost, "/api/ats/dlq/retry", nil)
		if last.Code == http.StatusTooManyRequests {
			break
		}
	}
	require.NotNil(t, last)
	assert.Equal(t, http.StatusTooManyRequests, last.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body["error"])
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrInvalidJSON{}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&scoring.ValidationError{Field: "consent", Message: "required"}))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(&ErrStoreUnavailable{}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
