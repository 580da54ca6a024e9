package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"metalpedia-backend/internal/shared/response"
	"metalpedia-backend/internal/shared/utils"
)

// RateLimiter throttles writes per caller. Redis is the shared store,
// a per-process token bucket takes over while redis is unreachable.
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	limit    redis_rate.Limit
}

// NewRateLimiter allows perMinute requests per caller with the given burst.
// rdb may be nil, then only the local limiter is used.
func NewRateLimiter(rdb *redis.Client, perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = perMinute
	}

	rl := &RateLimiter{
		fallback: newLocalLimiter(),
		limit:    redis_rate.Limit{Rate: perMinute, Burst: burst, Period: time.Minute},
	}
	if rdb != nil {
		rl.limiter = redis_rate.NewLimiter(rdb)
	}
	return rl
}

// Middleware limits by principal address when known, by client IP otherwise
func (rl *RateLimiter) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFor(c, scope)

		res := rl.allow(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit.Rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if res.Allowed == 0 {
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorBody{
				Error: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds.", retryAfter),
				Code:  "RATE_LIMITED",
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) keyFor(c *gin.Context, scope string) string {
	if p := PrincipalFrom(c); p != nil {
		return fmt.Sprintf("ratelimit:%s:addr:%s", scope, p.Address)
	}
	return fmt.Sprintf("ratelimit:%s:ip:%s", scope, utils.ExtractClientIP(c))
}

func (rl *RateLimiter) allow(ctx context.Context, key string) *redis_rate.Result {
	if rl.limiter == nil {
		return rl.fallback.allow(key, rl.limit)
	}
	res, err := rl.limiter.Allow(ctx, key, rl.limit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis rate limiter unavailable, using local limiter")
		return rl.fallback.allow(key, rl.limit)
	}
	return res
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	lastGC   time.Time
}

const entryTTL = 10 * time.Minute

func newLocalLimiter() *localLimiter {
	return &localLimiter{limiters: make(map[string]*limiterEntry), lastGC: time.Now()}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastGC) > entryTTL {
		for k, e := range l.limiters {
			if now.Sub(e.lastAccess) > entryTTL {
				delete(l.limiters, k)
			}
		}
		l.lastGC = now
	}

	entry, ok := l.limiters[key]
	if !ok {
		perSecond := float64(limit.Rate) / limit.Period.Seconds()
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(perSecond), limit.Burst)}
		l.limiters[key] = entry
	}
	entry.lastAccess = now

	res := &redis_rate.Result{Limit: limit}
	if entry.limiter.AllowN(now, 1) {
		res.Allowed = 1
		res.Remaining = int(entry.limiter.TokensAt(now))
		return res
	}

	res.RetryAfter = time.Duration(float64(time.Second) / (float64(limit.Rate) / limit.Period.Seconds()))
	return res
}
