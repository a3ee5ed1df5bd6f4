package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sjperalta/remuneraciones-api/internal/metrics"
)

// ExportLimiter throttles export and book generation per company
type ExportLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	metrics  *metrics.PayrollMetrics
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewExportLimiter creates a limiter allowing perSecond requests with the given burst per company
func NewExportLimiter(perSecond float64, burst int, m *metrics.PayrollMetrics) *ExportLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ExportLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		ttl:      10 * time.Minute,
		metrics:  m,
	}
}

func (l *ExportLimiter) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// drop idle companies
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) > l.ttl {
			delete(l.limiters, k)
		}
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Middleware limits by the :company_id path param
func (l *ExportLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("company_id")
		if key == "" {
			c.Next()
			return
		}

		limiter := l.get(key, time.Now())
		if !limiter.Allow() {
			l.metrics.ExportThrottled()
			c.Header("X-RateLimit-Limit", strconv.Itoa(l.burst))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiadas solicitudes de exportación, intente nuevamente en unos segundos",
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.burst))
		c.Next()
	}
}
