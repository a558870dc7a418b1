package main

import (
  "context"
  "fmt"
  "os"

  "github.com/masarhq/masar-backend/internal/db"
  "github.com/masarhq/masar-backend/internal/handlers"
  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/middleware"
  "github.com/masarhq/masar-backend/internal/observability"
  "github.com/masarhq/masar-backend/internal/repos"
  "github.com/masarhq/masar-backend/internal/server"
  "github.com/masarhq/masar-backend/internal/services"
  "github.com/masarhq/masar-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing
  if stop := observability.InitTracing(context.Background(), log, observability.Config{
    ServiceName: "masar-backend",
    Environment: utils.GetEnv("APP_ENV", "development", log),
  }); stop != nil {
    defer func() { _ = stop(context.Background()) }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  roadmapRepo := repos.NewRoadmapRepo(thePG, log)
  topicRepo := repos.NewRoadmapTopicRepo(thePG, log)
  taskRepo := repos.NewTaskRepo(thePG, log)
  courseRepo := repos.NewCourseRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  geminiClient, err := services.NewGeminiClient(log)
  if err != nil {
    log.Error("Could not init GeminiClient", "error", err)
    os.Exit(1)
  }
  userService := services.NewUserService(thePG, log, userRepo)
  roadmapService := services.NewRoadmapService(thePG, log, roadmapRepo)
  generationService := services.NewRoadmapGenerationService(thePG, log, userRepo, roadmapRepo, topicRepo, taskRepo, courseRepo, geminiClient)
  topicService := services.NewTopicService(thePG, log, roadmapRepo, topicRepo, taskRepo)
  courseService := services.NewCourseService(thePG, log, courseRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  userHandler := handlers.NewUserHandler(log, userService)
  roadmapHandler := handlers.NewRoadmapHandler(log, roadmapService, generationService)
  topicHandler := handlers.NewTopicHandler(log, topicService)
  courseHandler := handlers.NewCourseHandler(log, courseService)

  // Middleware
  log.Info("Setting up middleware from main...")
  rateLimiter, err := middleware.NewRateLimiter(log)
  if err != nil {
    log.Warn("Rate limiter init failed; continuing without it", "error", err)
  }

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    UserHandler:    userHandler,
    RoadmapHandler: roadmapHandler,
    TopicHandler:   topicHandler,
    CourseHandler:  courseHandler,
    RateLimiter:    rateLimiter,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
