package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/institute/backend/internal/infrastructure/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/test", okHandler)

	t.Run("empty whitelist sets no headers", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/test", map[string]string{"Origin": "http://malicious.example"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight still answers 204", func(t *testing.T) {
		w := serve(router, http.MethodOptions, "/test", map[string]string{"Origin": "http://some.example"})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"http://localhost:3000"}

	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/test", okHandler)

	t.Run("allowed origin", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/test", map[string]string{"Origin": "http://localhost:3000"})
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), CenterHeaderKey)
	})

	t.Run("unknown origin", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/test", map[string]string{"Origin": "http://other.example"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight for allowed origin", func(t *testing.T) {
		w := serve(router, http.MethodOptions, "/test", map[string]string{"Origin": "http://localhost:3000"})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("wildcard drops credentials", func(t *testing.T) {
		wild := DefaultCORSConfig()
		wild.AllowOrigins = []string{"*"}
		r := gin.New()
		r.Use(CORSWithConfig(wild))
		r.GET("/test", okHandler)

		w := serve(r, http.MethodGet, "/test", map[string]string{"Origin": "http://any.example"})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		seen = c.GetString(logger.GinRequestIDKey)
		okHandler(c)
	})

	t.Run("generates an ID", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/test", nil)
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagates the client ID", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/test", map[string]string{RequestIDHeader: "req-42"})
		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	})

	t.Run("truncates oversized IDs", func(t *testing.T) {
		serve(router, http.MethodGet, "/test", map[string]string{RequestIDHeader: strings.Repeat("a", 500)})
		assert.Len(t, seen, MaxRequestIDLength)
	})
}

func TestSecure(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/test", okHandler)

	w := serve(router, http.MethodGet, "/test", nil)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	cfg := DefaultSecurityConfig()
	cfg.HSTSEnabled = true
	router = gin.New()
	router.Use(SecureWithConfig(cfg))
	router.GET("/test", okHandler)

	w = serve(router, http.MethodGet, "/test", nil)
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
}
