package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(perMinute, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(perMinute, burst), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func postLogin(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	return w.Code
}

func TestRateLimitBurstExhaustion(t *testing.T) {
	r := limitedRouter(1, 2)

	assert.Equal(t, http.StatusOK, postLogin(r))
	assert.Equal(t, http.StatusOK, postLogin(r))
	assert.Equal(t, http.StatusTooManyRequests, postLogin(r))
}

func TestRateLimitDegenerateSettings(t *testing.T) {
	// Zero values must neither panic nor lock everyone out
	r := limitedRouter(0, 0)
	assert.Equal(t, http.StatusOK, postLogin(r))
}
