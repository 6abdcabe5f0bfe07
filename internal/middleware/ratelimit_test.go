package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namsport/fixturedesk/internal/middleware"
)

func doFrom(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/fixtures", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BurstThen429(t *testing.T) {
	// 4 per hour gives a burst of 2 and effectively no refill during the test.
	h := middleware.NewRateLimiter(4, time.Hour)(trivialHandler)

	require.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:5000").Code)
	require.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:5001").Code)

	rec := doFrom(h, "10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"code":"rate_limited"`)
}

func TestRateLimiter_PerIP(t *testing.T) {
	h := middleware.NewRateLimiter(2, time.Hour)(trivialHandler)

	require.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1").Code)
	require.Equal(t, http.StatusTooManyRequests, doFrom(h, "10.0.0.1:2").Code)

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.2:1").Code, "another client has its own bucket")
}

func TestRateLimiter_DisabledWhenZero(t *testing.T) {
	h := middleware.NewRateLimiter(0, time.Minute)(trivialHandler)

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1").Code)
	}
}
