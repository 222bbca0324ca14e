package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyMiddleware(t *testing.T) {
	g := gin.New()
	g.GET("/", APIKeyMiddleware("s3cret"), func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := map[string]int{"": http.StatusForbidden, "wrong": http.StatusForbidden, "s3cret": http.StatusOK}
	for key, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if key != "" {
			req.Header.Set(APIKeyHeader, key)
		}
		rw := httptest.NewRecorder()
		g.ServeHTTP(rw, req)
		require.Equal(t, want, rw.Code, "key %q", key)
	}
}

func TestAPIKeyMiddleware_DisabledWhenEmpty(t *testing.T) {
	g := gin.New()
	g.GET("/", APIKeyMiddleware(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rw.Code)
}

func TestCORSPreflight(t *testing.T) {
	g := gin.New()
	g.Use(CORS())
	g.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodOptions, "/", nil))
	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, "*", rw.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rw.Header().Get("Access-Control-Allow-Headers"), APIKeyHeader)
}
