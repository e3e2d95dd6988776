package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func doLimitedRequest(limiter *IPRateLimiter, ip string) int {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := limiter.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec.Code
}

func TestRateLimiterExhaustsBurst(t *testing.T) {
	limiter := NewIPRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doLimitedRequest(limiter, "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doLimitedRequest(limiter, "10.0.0.1"))
}

func TestRateLimiterIsolatesIPs(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)

	assert.Equal(t, http.StatusOK, doLimitedRequest(limiter, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doLimitedRequest(limiter, "10.0.0.1"))
	// A different client is unaffected by the first one's exhaustion.
	assert.Equal(t, http.StatusOK, doLimitedRequest(limiter, "10.0.0.2"))
}
