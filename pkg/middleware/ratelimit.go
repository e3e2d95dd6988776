package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pravaah/backend/pkg/response"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages rate limiters for each IP. Applied to credential
// endpoints (login, forgot-password) to slow down guessing.
type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}

	// Reset the map periodically to avoid unbounded growth in a long
	// running process.
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			i.mu.Lock()
			if len(i.ips) > 10000 {
				i.ips = make(map[string]*rate.Limiter)
			}
			i.mu.Unlock()
		}
	}()

	return i
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}

	return limiter
}

func (i *IPRateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !i.GetLimiter(c.RealIP()).Allow() {
				return response.Error(c, http.StatusTooManyRequests, "too_many_requests", "rate limit exceeded")
			}
			return next(c)
		}
	}
}
