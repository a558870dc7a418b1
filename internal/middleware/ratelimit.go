package middleware

import (
  "context"
  "fmt"
  "net/http"
  "strings"
  "time"

  "github.com/gin-gonic/gin"
  goredis "github.com/redis/go-redis/v9"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/utils"
)

// RateLimiter is a fixed-window limiter keyed by client IP, counted in
// redis so multiple instances share one window.
type RateLimiter struct {
  log    *logger.Logger
  rdb    *goredis.Client
  limit  int
  window time.Duration
}

func NewRateLimiter(log *logger.Logger) (*RateLimiter, error) {
  addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
  if addr == "" {
    return nil, nil
  }

  limit := utils.GetEnvAsInt("RATE_LIMIT_REQUESTS", 60, log)
  windowSec := utils.GetEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60, log)

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &RateLimiter{
    log:    log.With("middleware", "RateLimiter"),
    rdb:    rdb,
    limit:  limit,
    window: time.Duration(windowSec) * time.Second,
  }, nil
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
  return func(c *gin.Context) {
    key := "ratelimit:" + c.ClientIP()

    count, err := rl.rdb.Incr(c.Request.Context(), key).Result()
    if err != nil {
      // Degrade open: a redis outage should not take the API down.
      rl.log.Warn("Rate limit check failed", "error", err)
      c.Next()
      return
    }
    if count == 1 {
      if err := rl.rdb.Expire(c.Request.Context(), key, rl.window).Err(); err != nil {
        rl.log.Warn("Rate limit expire failed", "error", err)
      }
    }
    if count > int64(rl.limit) {
      c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
      return
    }
    c.Next()
  }
}
