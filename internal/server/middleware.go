package server

import (
	"github.com/gin-gonic/gin"
)

// AnalyticsRateLimit gates the dashboard endpoint behind the redis token
// bucket. Without redis the limiter is nil and the middleware is a pass
// through.
func (s *Server) AnalyticsRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil {
			c.Next()
			return
		}

		key := "ratelimit:dashboard:" + c.ClientIP()
		rate := s.cfg.Analytics.RateLimitPerMinute / 60
		allowed, err := s.limiter.Allow(c.Request.Context(), key, rate, s.cfg.Analytics.RateLimitBurst)
		if err != nil {
			// A broken limiter should not take the dashboard down.
			c.Next()
			return
		}
		if !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
