package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/quicknotes/notes-api/pkg/metrics"
	"github.com/stretchr/testify/require"
)

// limiters are keyed per client, so every test uses its own remote address
func requestFrom(path, addr string) *http.Request {
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2))
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestFrom("/ok", "10.0.0.1:1234"))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, requestFrom("/ok", "10.0.0.1:1234"))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusOK, w2.Code)
	require.Equal(t, before+2, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, requestFrom("/limited", "10.0.0.2:1234"))
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, requestFrom("/limited", "10.0.0.2:1234"))
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
	require.JSONEq(t, `{"detail":"Rate limit exceeded"}`, w2.Body.String())
	require.Equal(t, "1", w2.Header().Get("Retry-After"))

	// a different client has its own bucket
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, requestFrom("/limited", "10.0.0.3:1234"))
	require.Equal(t, http.StatusOK, w3.Code)

	// 2 rps refills one token in 500ms
	time.Sleep(600 * time.Millisecond)
	w4 := httptest.NewRecorder()
	r.ServeHTTP(w4, requestFrom("/limited", "10.0.0.2:1234"))
	require.Equal(t, http.StatusOK, w4.Code)
}

func TestRateLimitMiddleware_UsesAPIKeyWhenPresent(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/u", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// same key from two addresses shares one bucket
	rq1 := requestFrom("/u", "10.0.0.4:1234")
	rq1.Header.Set(APIKeyHeader, "shared-key")
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, rq1)
	require.Equal(t, http.StatusOK, w1.Code)

	rq2 := requestFrom("/u", "10.0.0.5:1234")
	rq2.Header.Set(APIKeyHeader, "shared-key")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, rq2)
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
}
