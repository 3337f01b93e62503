package middleware

import (
	"time"

	"edufleex-go/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录请求数与耗时，按路由模板聚合避免标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
