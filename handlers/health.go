package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadyFunc reports per-dependency readiness.
type ReadyFunc func(ctx context.Context) map[string]bool

var startTime = time.Now()

// RegisterHealth adds GET /health and GET /ready.
// /ready returns 200 only when every dependency reported by ready is available.
func RegisterHealth(r *gin.Engine, ready ReadyFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		deps := ready(ctx)
		ok := true
		for _, up := range deps {
			ok = ok && up
		}
		uptime := time.Since(startTime).String()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
