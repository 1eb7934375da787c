package middleware

import (
    "fmt"
    "sync"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"
    "golang.org/x/time/rate"

    "github.com/shenlye/tricore-api/pkg/logger"
    "github.com/shenlye/tricore-api/pkg/response"
)

// RateLimiter 按客户端 IP 限流
// 配置了 Redis 时用固定窗口计数（多实例共享），否则退化为本地令牌桶
type RateLimiter struct {
    cache  *redis.Client
    limit  int
    window time.Duration

    mu       sync.Mutex
    limiters map[string]*rate.Limiter
}

func NewRateLimiter(cache *redis.Client, limit int, window time.Duration) *RateLimiter {
    return &RateLimiter{
        cache:    cache,
        limit:    limit,
        window:   window,
        limiters: make(map[string]*rate.Limiter),
    }
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
    return func(c *gin.Context) {
        if !rl.allow(c) {
            response.TooManyRequests(c)
            return
        }
        c.Next()
    }
}

func (rl *RateLimiter) allow(c *gin.Context) bool {
    ip := c.ClientIP()
    if rl.cache != nil {
        key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), ip)
        cnt, err := rl.cache.Incr(c.Request.Context(), key).Result()
        if err != nil {
            // Redis 故障时放行，不把限流变成单点
            logger.Warn("rate limiter redis error", zap.Error(err))
            return true
        }
        if cnt == 1 {
            rl.cache.Expire(c.Request.Context(), key, rl.window)
        }
        return cnt <= int64(rl.limit)
    }

    rl.mu.Lock()
    defer rl.mu.Unlock()
    lim, ok := rl.limiters[ip]
    if !ok {
        lim = rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.limit)), rl.limit)
        rl.limiters[ip] = lim
    }
    return lim.Allow()
}
