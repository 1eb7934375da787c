package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLimitedEngine(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", limiter.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doLogin(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_RedisWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := newLimitedEngine(NewRateLimiter(cache, 3, time.Minute))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doLogin(r), "request %d should pass", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, doLogin(r))

	// 窗口过期后恢复
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, doLogin(r))
}

func TestRateLimiter_RedisDownFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	r := newLimitedEngine(NewRateLimiter(cache, 1, time.Minute))

	assert.Equal(t, http.StatusOK, doLogin(r))
	assert.Equal(t, http.StatusOK, doLogin(r))
}

func TestRateLimiter_LocalFallback(t *testing.T) {
	r := newLimitedEngine(NewRateLimiter(nil, 2, time.Hour))

	assert.Equal(t, http.StatusOK, doLogin(r))
	assert.Equal(t, http.StatusOK, doLogin(r))
	assert.Equal(t, http.StatusTooManyRequests, doLogin(r))
}
