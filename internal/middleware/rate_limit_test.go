// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/albanrr9/PharmacyOnline/internal/config"
)

func rateLimitedRouter(limits *RateLimits) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", limits.General(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func pingFrom(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestGeneralRateLimitBudget(t *testing.T) {
	limits := NewRateLimits(config.RateLimitConfig{
		GeneralBurst: 3,
		AuthBurst:    1,
		UploadBurst:  1,
	})
	r := rateLimitedRouter(limits)

	// The configured burst is honored exactly, then the client is cut off
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, pingFrom(r, "10.9.0.1"), "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(r, "10.9.0.1"))

	// Budgets are per client address
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.9.0.2"))
}

func TestAuthRateLimitBudget(t *testing.T) {
	limits := NewRateLimits(config.RateLimitConfig{
		GeneralBurst: 10,
		AuthBurst:    2,
		UploadBurst:  10,
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", limits.Auth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.9.0.3:12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
