package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	resp "github.com/gblsmlo/lemind/internal/transport/http/response"
)

// RateLimit is one token bucket for every caller.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Abort(c, resp.Error(resp.CodeTooManyRequests, "too many requests"))
	}
}

// RateLimitPerIP keeps one bucket per client IP. Buckets idle for ten minutes
// are dropped.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	buckets := gocache.New(10*time.Minute, time.Minute)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if _, ok := buckets.Get(ip); !ok {
			// Add fails when another request created the bucket first.
			_ = buckets.Add(ip, rate.NewLimiter(rps, burst), gocache.DefaultExpiration)
		}
		v, ok := buckets.Get(ip)
		if !ok {
			c.Next()
			return
		}
		buckets.SetDefault(ip, v)
		if v.(*rate.Limiter).Allow() {
			c.Next()
			return
		}
		resp.Abort(c, resp.Error(resp.CodeTooManyRequests, "too many requests"))
	}
}
