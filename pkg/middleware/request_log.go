package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quicknotes/notes-api/pkg/logger"
)

// RequestLogger writes one line per request: [status] METHOD path (bytes_in) latency
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof("[%d] %s %s (%d) %s", c.Writer.Status(), c.Request.Method, c.Request.URL.Path, c.Request.ContentLength, time.Since(start))
	}
}
