package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cppla/prepmeter/utils"
)

const (
	limiterIdle       = 5 * time.Minute
	limiterSweepEvery = time.Minute
)

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

var (
	limiters   = map[string]*rateLimiter{}
	limitersMu sync.Mutex
	lastSweep  time.Time
)

// RateLimit applies a token bucket of perMinute requests per client and scope. The client is
// the authenticated user when known, else the IP. Buckets of different scopes are independent.
func RateLimit(scope string, perMinute int) gin.HandlerFunc {
	perMinute = atLeast(perMinute, 1)
	r := rate.Every(time.Minute / time.Duration(perMinute))
	burst := atLeast(perMinute/2, 1)

	return func(ctx *gin.Context) {
		key := scope + "|ip:" + ctx.ClientIP()
		if uid, ok := CurrentUserID(ctx); ok {
			key = scope + "|user:" + strconv.FormatUint(uint64(uid), 10)
		}

		if !getLimiter(key, r, burst).Allow() {
			ctx.Header("Retry-After", strconv.Itoa(atLeast(int(time.Minute/time.Duration(perMinute)/time.Second), 1)))
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	now := time.Now()
	if now.Sub(lastSweep) > limiterSweepEvery {
		for k, l := range limiters {
			if now.After(l.expires) {
				delete(limiters, k)
			}
		}
		lastSweep = now
	}

	l, ok := limiters[key]
	if !ok {
		l = &rateLimiter{limiter: rate.NewLimiter(limit, burst)}
		limiters[key] = l
	}
	l.expires = now.Add(limiterIdle)
	return l.limiter
}

func atLeast(a, b int) int {
	if a > b {
		return a
	}
	return b
}
