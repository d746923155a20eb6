package middleware

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/user/moviecatalog/internal/utils"
	"golang.org/x/time/rate"
)

// RateLimitConfig token bucket per client IP
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
	// Idle clients are forgotten after this long
	Idle time.Duration
}

// RateLimiter limits state-changing requests per client IP
type RateLimiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	clients *cache.Cache
}

// NewRateLimiter creates the limiter store
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Idle <= 0 {
		cfg.Idle = 3 * time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &RateLimiter{
		cfg:     cfg,
		clients: cache.New(cfg.Idle, time.Minute),
	}
}

// Allow consumes a token for ip
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	var limiter *rate.Limiter
	if v, found := l.clients.Get(ip); found {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)
	}
	// refresh the idle expiry on every hit
	l.clients.Set(ip, limiter, cache.DefaultExpiration)

	return limiter.Allow()
}

// Clients number of tracked clients
func (l *RateLimiter) Clients() int {
	return l.clients.ItemCount()
}

// Middleware limits every method except GET and HEAD
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.cfg.Enabled || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		if !l.Allow(c.ClientIP()) {
			if l.cfg.RPS > 0 {
				c.Header("Retry-After", fmt.Sprint(int(math.Ceil(1/l.cfg.RPS))))
			}
			utils.TooManyRequests(c, "")
			return
		}
		c.Next()
	}
}
