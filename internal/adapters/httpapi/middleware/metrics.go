package middleware

import (
	"strconv"
	"time"

	"bloghub/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and duration per route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// الگوی مسیر (مثلا /posts/:id) به جای مسیر خام
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPDuration.WithLabelValues(path, c.Request.Method, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequests.WithLabelValues(path, c.Request.Method, status).Inc()
	}
}
