package server

import (
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/masarhq/masar-backend/internal/handlers"
  "github.com/masarhq/masar-backend/internal/middleware"
  "github.com/masarhq/masar-backend/internal/utils"
)

type RouterConfig struct {
  UserHandler    *handlers.UserHandler
  RoadmapHandler *handlers.RoadmapHandler
  TopicHandler   *handlers.TopicHandler
  CourseHandler  *handlers.CourseHandler
  RateLimiter    *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", nil)
  router.Use(cors.New(cors.Config{
    AllowOrigins:     strings.Split(origins, ","),
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.Use(otelgin.Middleware("masar-backend"))
  if cfg.RateLimiter != nil {
    router.Use(cfg.RateLimiter.Limit())
  }

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    // Users
    api.POST("/users", cfg.UserHandler.Create)
    api.GET("/users/:id", cfg.UserHandler.Get)
    // Roadmaps
    api.POST("/career-roadmap", cfg.RoadmapHandler.Create)
    api.GET("/career-roadmap", cfg.RoadmapHandler.Get)
    api.PUT("/career-roadmap/:id", cfg.RoadmapHandler.Update)
    api.DELETE("/career-roadmap/:id", cfg.RoadmapHandler.Delete)
    // Topics / tasks
    api.POST("/topics", cfg.TopicHandler.Create)
    api.PUT("/topics/:id", cfg.TopicHandler.Update)
    api.DELETE("/topics/:id", cfg.TopicHandler.Delete)
    api.PUT("/tasks/:id", cfg.TopicHandler.UpdateTask)
    // Courses
    api.POST("/courses/:id", cfg.CourseHandler.Update)
    api.DELETE("/courses/:id", cfg.CourseHandler.Delete)
  }

  return router
}
