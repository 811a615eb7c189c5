package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPRecorder receives one observation per finished request.
type HTTPRecorder interface {
	RecordHTTP(method, route string, status int, d time.Duration)
}

// Metrics records method, matched route, status and latency. Unmatched
// routes share one label to keep cardinality bounded.
func Metrics(rec HTTPRecorder) gin.HandlerFunc {
	if rec == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
