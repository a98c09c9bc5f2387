package security

import (
	"net/http"
	"net/http/httptest"
	"school_quiz_backend/internal/config"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(l *Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/api/quiz/result", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, path string, n int) []int {
	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		codes = append(codes, w.Code)
	}
	return codes
}

func TestLimiterBlocksBurst(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{MaxRequests: 3, WindowMinutes: 60})
	r := limitedRouter(l)

	assert.Equal(t, []int{200, 200, 200, http.StatusTooManyRequests}, hit(r, "/api/quiz/result", 4))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quiz/result", nil))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestLimiterSkipsExemptPaths(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{MaxRequests: 1, WindowMinutes: 60, ExemptPaths: []string{"/api/health"}})
	r := limitedRouter(l)

	assert.Equal(t, []int{200, 200, 200}, hit(r, "/api/health", 3))
	assert.Equal(t, []int{200, http.StatusTooManyRequests}, hit(r, "/api/quiz/result", 2))
}

func TestLimiterEvictsIdleVisitors(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{MaxRequests: 5, WindowMinutes: 1})
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }
	l.get("10.0.0.1")

	l.now = func() time.Time { return base.Add(time.Second) }
	l.get("10.0.0.2")

	l.now = func() time.Time { return base.Add(3*time.Minute + 500*time.Millisecond) }
	assert.Equal(t, 1, l.evictIdle(3*time.Minute))
	assert.Len(t, l.visitors, 1)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000/"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
