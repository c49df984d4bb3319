package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github-pr-watcher/pkg/log"
)

// RequestLogger logs one line per request, tagged with the GitHub delivery id when present.
func (m Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		if id := c.GetHeader("X-GitHub-Delivery"); id != "" {
			ctx = log.WithDeliveryID(ctx, id)
		}
		m.l.Infof(ctx, "internal.middleware.RequestLogger: %s %s %d %v",
			c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
