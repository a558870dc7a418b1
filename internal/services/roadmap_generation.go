package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "go.opentelemetry.io/otel"
  "golang.org/x/sync/errgroup"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/repos"
  "github.com/masarhq/masar-backend/internal/types"
)

var (
  ErrUserNotFound  = errors.New("user not found")
  ErrRoadmapExists = errors.New("user already has a career roadmap")
)

// RoadmapGenerationService turns one AI response into a consistent set of
// roadmap/topic/task/course rows. Content is fetched and parsed once; the
// topic and course writers run concurrently, each in its own transaction,
// and a failure in either tears the whole roadmap back down.
type RoadmapGenerationService interface {
  GenerateForUser(ctx context.Context, userID uuid.UUID, role string) (*types.Roadmap, error)
  SaveTopics(ctx context.Context, roadmapID uuid.UUID, content *RoadmapContent) error
  SaveCourses(ctx context.Context, roadmapID uuid.UUID, content *RoadmapContent) error
}

type roadmapGenerationService struct {
  db  *gorm.DB
  log *logger.Logger

  userRepo    repos.UserRepo
  roadmapRepo repos.RoadmapRepo
  topicRepo   repos.RoadmapTopicRepo
  taskRepo    repos.TaskRepo
  courseRepo  repos.CourseRepo

  ai GeminiClient
}

func NewRoadmapGenerationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  roadmapRepo repos.RoadmapRepo,
  topicRepo repos.RoadmapTopicRepo,
  taskRepo repos.TaskRepo,
  courseRepo repos.CourseRepo,
  ai GeminiClient,
) RoadmapGenerationService {
  return &roadmapGenerationService{
    db:          db,
    log:         baseLog.With("service", "RoadmapGenerationService"),
    userRepo:    userRepo,
    roadmapRepo: roadmapRepo,
    topicRepo:   topicRepo,
    taskRepo:    taskRepo,
    courseRepo:  courseRepo,
    ai:          ai,
  }
}

func (gs *roadmapGenerationService) GenerateForUser(ctx context.Context, userID uuid.UUID, role string) (*types.Roadmap, error) {
  ctx, span := otel.Tracer("masar-backend/services").Start(ctx, "RoadmapGeneration.GenerateForUser")
  defer span.End()

  users, err := gs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("load user: %w", err)
  }
  if len(users) == 0 || users[0] == nil {
    return nil, ErrUserNotFound
  }

  existing, err := gs.roadmapRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("load existing roadmap: %w", err)
  }
  if len(existing) > 0 {
    return nil, ErrRoadmapExists
  }

  now := time.Now()
  shell := &types.Roadmap{
    ID:        uuid.New(),
    UserID:    userID,
    Role:      role,
    Details:   datatypes.JSON([]byte(`{}`)),
    CreatedAt: now,
    UpdatedAt: now,
  }
  if _, err := gs.roadmapRepo.Create(ctx, nil, []*types.Roadmap{shell}); err != nil {
    // The partial unique index closes the check-then-create race: a
    // concurrent winner surfaces here as a duplicate key.
    if errors.Is(err, gorm.ErrDuplicatedKey) {
      return nil, ErrRoadmapExists
    }
    return nil, fmt.Errorf("create roadmap: %w", err)
  }

  raw, err := gs.ai.GenerateContent(ctx, RoadmapPrompt(role))
  if err != nil {
    span.RecordError(err)
    gs.compensate(ctx, shell.ID)
    return nil, fmt.Errorf("fetch roadmap content: %w", err)
  }

  content, err := ParseRoadmapContent(raw)
  if err != nil {
    span.RecordError(err)
    gs.compensate(ctx, shell.ID)
    return nil, fmt.Errorf("parse roadmap content: %w", err)
  }

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error { return gs.SaveTopics(gctx, shell.ID, content) })
  g.Go(func() error { return gs.SaveCourses(gctx, shell.ID, content) })
  if err := g.Wait(); err != nil {
    span.RecordError(err)
    gs.compensate(ctx, shell.ID)
    return nil, fmt.Errorf("generate roadmap content: %w", err)
  }

  populated, err := gs.roadmapRepo.GetPopulatedByID(ctx, nil, shell.ID)
  if err != nil {
    return nil, fmt.Errorf("reload roadmap: %w", err)
  }
  if populated == nil {
    return nil, fmt.Errorf("roadmap disappeared after generation")
  }

  gs.log.Info("Roadmap generated",
    "roadmap_id", shell.ID,
    "user_id", userID,
    "topics", len(populated.Topics),
    "courses", len(populated.Courses),
  )
  return populated, nil
}

func (gs *roadmapGenerationService) SaveTopics(ctx context.Context, roadmapID uuid.UUID, content *RoadmapContent) error {
  if content == nil {
    return fmt.Errorf("no roadmap content")
  }
  return gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    // Audit snapshot of what the model returned, always rewritten.
    snapshot, err := json.Marshal(content.Topics)
    if err != nil {
      return fmt.Errorf("marshal topics snapshot: %w", err)
    }
    if err := gs.roadmapRepo.UpdateFields(ctx, tx, roadmapID, map[string]interface{}{
      "details": datatypes.JSON(snapshot),
    }); err != nil {
      return fmt.Errorf("store topics snapshot: %w", err)
    }

    now := time.Now()
    for i, gt := range content.Topics {
      topic := &types.RoadmapTopic{
        ID:          uuid.New(),
        RoadmapID:   roadmapID,
        Title:       gt.Title,
        Description: gt.Description,
        Position:    i + 1,
        TotalTasks:  len(gt.Tasks),
        CreatedAt:   now,
        UpdatedAt:   now,
      }
      inserted, err := gs.topicRepo.InsertIgnoreDuplicate(ctx, tx, topic)
      if err != nil {
        return fmt.Errorf("create topic %q: %w", gt.Title, err)
      }
      if !inserted {
        continue
      }

      tasks := make([]*types.Task, 0, len(gt.Tasks))
      for j, t := range gt.Tasks {
        tasks = append(tasks, &types.Task{
          ID:          uuid.New(),
          TopicID:     topic.ID,
          Title:       t.Title,
          Description: t.Description,
          Position:    j + 1,
          CreatedAt:   now,
          UpdatedAt:   now,
        })
      }
      if _, err := gs.taskRepo.Create(ctx, tx, tasks); err != nil {
        return fmt.Errorf("create tasks for topic %q: %w", gt.Title, err)
      }
    }
    return nil
  })
}

func (gs *roadmapGenerationService) SaveCourses(ctx context.Context, roadmapID uuid.UUID, content *RoadmapContent) error {
  if content == nil {
    return fmt.Errorf("no roadmap content")
  }
  return gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    now := time.Now()
    for _, gc := range content.Courses {
      course := &types.Course{
        ID:          uuid.New(),
        RoadmapID:   roadmapID,
        Title:       gc.Title,
        Description: gc.Description,
        Instructor:  gc.Instructors,
        CourseLink:  gc.CourseLink,
        CreatedAt:   now,
        UpdatedAt:   now,
      }
      if _, err := gs.courseRepo.InsertIgnoreDuplicate(ctx, tx, course); err != nil {
        return fmt.Errorf("create course %q: %w", gc.Title, err)
      }
    }
    return nil
  })
}

// compensate removes the shell and anything either writer already committed,
// child rows first. Cascade behavior is never assumed.
func (gs *roadmapGenerationService) compensate(ctx context.Context, roadmapID uuid.UUID) {
  // The request context may already be canceled (client gone, AI call
  // timed out); the cleanup must still run or the shell is orphaned.
  ctx = context.WithoutCancel(ctx)
  err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    topics, err := gs.topicRepo.GetByRoadmapIDsUnscoped(ctx, tx, []uuid.UUID{roadmapID})
    if err != nil {
      return fmt.Errorf("load topics for rollback: %w", err)
    }
    topicIDs := make([]uuid.UUID, 0, len(topics))
    for _, t := range topics {
      if t != nil {
        topicIDs = append(topicIDs, t.ID)
      }
    }
    if err := gs.taskRepo.HardDeleteByTopicIDs(ctx, tx, topicIDs); err != nil {
      return fmt.Errorf("delete tasks: %w", err)
    }
    if err := gs.topicRepo.HardDeleteByRoadmapIDs(ctx, tx, []uuid.UUID{roadmapID}); err != nil {
      return fmt.Errorf("delete topics: %w", err)
    }
    if err := gs.courseRepo.HardDeleteByRoadmapIDs(ctx, tx, []uuid.UUID{roadmapID}); err != nil {
      return fmt.Errorf("delete courses: %w", err)
    }
    if err := gs.roadmapRepo.HardDeleteByIDs(ctx, tx, []uuid.UUID{roadmapID}); err != nil {
      return fmt.Errorf("delete roadmap: %w", err)
    }
    return nil
  })
  if err != nil {
    gs.log.Error("Compensating delete failed; roadmap may be orphaned", "error", err, "roadmap_id", roadmapID)
  }
}
