package middleware

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "activat:rate:"

// Budget is the allowance of one class of routes. Every client gets its own
// counter per budget, so a device streaming sensor readings never uses up
// the allowance for session commands.
type Budget struct {
	Name   string
	Limit  int
	Window time.Duration
}

func PerMinute(name string, limit int) Budget {
	return Budget{Name: name, Limit: limit, Window: time.Minute}
}

func (b Budget) enabled() bool {
	return b.Limit > 0 && b.Window > 0
}

// RateLimiter counts requests in fixed windows kept in Redis. A nil client
// disables every budget.
type RateLimiter struct {
	rdb    *redis.Client
	prefix string
	logger *log.Logger
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		prefix: rateLimitKeyPrefix,
		logger: log.New(os.Stdout, "[RATELIMIT] ", log.LstdFlags),
	}
}

// Limit returns the middleware enforcing b. When Redis cannot be reached the
// request is let through.
func (l *RateLimiter) Limit(b Budget) gin.HandlerFunc {
	if l == nil || l.rdb == nil || !b.enabled() {
		return func(c *gin.Context) { c.Next() }
	}

	limit := strconv.Itoa(b.Limit)
	return func(c *gin.Context) {
		key := l.prefix + b.Name + ":" + clientKey(c)

		count, ttl, err := l.hit(c.Request.Context(), key, b.Window)
		if err != nil {
			l.logger.Printf("%s budget skipped, redis error: %v", b.Name, err)
			c.Next()
			return
		}

		retryIn := int((ttl + time.Second - 1) / time.Second)
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(b.Limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(b.Limit) {
			observability.RecordRateLimited(b.Name)
			c.Header("Retry-After", strconv.Itoa(retryIn))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"budget":     b.Name,
				"retry_in_s": retryIn,
			})
			return
		}

		c.Next()
	}
}

// hit counts one request. SET NX starts the window with its expiry in the
// same transaction as the increment, so a counter never outlives it.
func (l *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = window
	}
	return incr.Val(), remaining, nil
}

// clientKey names the caller: the paired device once authenticated, the
// remote address otherwise.
func clientKey(c *gin.Context) string {
	if subject, ok := GetSubject(c); ok && subject != "" {
		return "device:" + subject
	}
	return "ip:" + c.ClientIP()
}
