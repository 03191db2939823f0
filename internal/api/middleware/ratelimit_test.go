package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketLimiter(t *testing.T) {
	limiter := NewTokenBucketLimiter(0.001, 2)

	ok, _ := limiter.Reserve("10.0.0.1")
	assert.True(t, ok)
	ok, _ = limiter.Reserve("10.0.0.1")
	assert.True(t, ok)

	ok, retry := limiter.Reserve("10.0.0.1")
	assert.False(t, ok, "burst exhausted")
	assert.Positive(t, retry)

	ok, _ = limiter.Reserve("10.0.0.2")
	assert.True(t, ok, "keys have separate buckets")
}

func TestTokenBucketLimiter_RejectedRequestsDoNotConsumeTokens(t *testing.T) {
	limiter := NewTokenBucketLimiter(0.001, 1)

	ok, _ := limiter.Reserve("k")
	require.True(t, ok)
	_, first := limiter.Reserve("k")
	_, second := limiter.Reserve("k")

	assert.InDelta(t, first.Seconds(), second.Seconds(), 1, "cancelled reservations are returned to the bucket")
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(NewTokenBucketLimiter(0.001, 5))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, send("192.0.2.1:1234").Code, "attempt %d", i+1)
	}

	rec := send("192.0.2.1:4321")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "port does not change the key")
	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retry, 1)

	assert.Equal(t, http.StatusNoContent, send("192.0.2.2:1234").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, "203.0.113.9", ClientIP(req))

	req.RemoteAddr = "[2001:db8::1]:80"
	assert.Equal(t, "2001:db8::1", ClientIP(req))

	req.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", ClientIP(req), "address set by RealIP has no port")
}
