package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// manualClock is a TimeProvider moved forward by hand
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now.Add(d)
	return ch
}

func (c *manualClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := securityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
}

func TestLoggingMiddlewareCapturesStatus(t *testing.T) {
	var seen *responseWriter
	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.(*responseWriter)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), slog.Default())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, http.StatusTeapot, seen.status)
	assert.Equal(t, len("short and stout"), seen.size)
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}), slog.Default())

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimiter(t *testing.T) {
	t.Run("limits within window", func(t *testing.T) {
		clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		rl := newRateLimiter(clock)

		for i := 0; i < 3; i++ {
			assert.True(t, rl.isAllowed("10.0.0.1", 3, time.Minute), "request %d", i)
		}
		assert.False(t, rl.isAllowed("10.0.0.1", 3, time.Minute))
		assert.True(t, rl.isAllowed("10.0.0.2", 3, time.Minute), "other clients are independent")
	})

	t.Run("window slides", func(t *testing.T) {
		clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		rl := newRateLimiter(clock)

		assert.True(t, rl.isAllowed("10.0.0.1", 1, time.Minute))
		assert.False(t, rl.isAllowed("10.0.0.1", 1, time.Minute))

		clock.advance(61 * time.Second)
		assert.True(t, rl.isAllowed("10.0.0.1", 1, time.Minute))
	})

	t.Run("idle clients are evicted", func(t *testing.T) {
		clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		rl := newRateLimiter(clock)

		rl.isAllowed("10.0.0.1", 5, time.Minute)
		clock.advance(10 * time.Minute)
		rl.isAllowed("10.0.0.2", 5, time.Minute)

		assert.NotContains(t, rl.clients, "10.0.0.1")
		assert.Contains(t, rl.clients, "10.0.0.2")
	})
}

func TestRateLimitedHandler(t *testing.T) {
	deck := new(MockDeckService)
	s := newTestServer(deck)
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.limiter = newRateLimiter(clock)

	handler := s.rateLimited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < rateLimit; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/render", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/render", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "Too many requests", decodeError(t, w.Body).Message)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "192.0.2.10:5555", nil, "192.0.2.10"},
		{"forwarded chain", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.4"}, "198.51.100.4"},
		{"garbage forwarded header", "192.0.2.10:5555", map[string]string{"X-Forwarded-For": "not-an-ip"}, "192.0.2.10"},
		{"no port", "192.0.2.99", nil, "192.0.2.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
