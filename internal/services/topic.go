package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/repos"
  "github.com/masarhq/masar-backend/internal/types"
)

var (
  ErrTopicNotFound = errors.New("topic not found")
  ErrTaskNotFound  = errors.New("task not found")
)

type TaskInput struct {
  Title       string `json:"title"`
  Description string `json:"description"`
}

type TopicInput struct {
  RoadmapID   uuid.UUID   `json:"roadmap_id"`
  Title       string      `json:"title"`
  Description string      `json:"description"`
  Position    int         `json:"position"`
  Tasks       []TaskInput `json:"tasks"`
}

// TopicService covers the manual topic/task surface, independent of AI
// generation. Manual creates do NOT ignore duplicates; a clashing title
// surfaces as a duplicate-key error for the handler to map.
type TopicService interface {
  CreateTopic(ctx context.Context, tx *gorm.DB, input TopicInput) (*types.RoadmapTopic, error)
  UpdateTopic(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.RoadmapTopic, error)
  SetTaskCompletion(ctx context.Context, taskID uuid.UUID, completed bool) (*types.Task, error)
  SoftDeleteTopic(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type topicService struct {
  db          *gorm.DB
  log         *logger.Logger
  roadmapRepo repos.RoadmapRepo
  topicRepo   repos.RoadmapTopicRepo
  taskRepo    repos.TaskRepo
}

func NewTopicService(
  db *gorm.DB,
  baseLog *logger.Logger,
  roadmapRepo repos.RoadmapRepo,
  topicRepo repos.RoadmapTopicRepo,
  taskRepo repos.TaskRepo,
) TopicService {
  serviceLog := baseLog.With("service", "TopicService")
  return &topicService{
    db:          db,
    log:         serviceLog,
    roadmapRepo: roadmapRepo,
    topicRepo:   topicRepo,
    taskRepo:    taskRepo,
  }
}

func (ts *topicService) CreateTopic(ctx context.Context, tx *gorm.DB, input TopicInput) (*types.RoadmapTopic, error) {
  roadmaps, err := ts.roadmapRepo.GetByIDs(ctx, tx, []uuid.UUID{input.RoadmapID})
  if err != nil {
    return nil, fmt.Errorf("load roadmap: %w", err)
  }
  if len(roadmaps) == 0 || roadmaps[0] == nil {
    return nil, ErrRoadmapNotFound
  }

  now := time.Now()
  topic := &types.RoadmapTopic{
    ID:          uuid.New(),
    RoadmapID:   input.RoadmapID,
    Title:       input.Title,
    Description: input.Description,
    Position:    input.Position,
    TotalTasks:  len(input.Tasks),
    CreatedAt:   now,
    UpdatedAt:   now,
  }

  err = ts.resolve(tx).WithContext(ctx).Transaction(func(txx *gorm.DB) error {
    if _, err := ts.topicRepo.Create(ctx, txx, []*types.RoadmapTopic{topic}); err != nil {
      return err
    }
    tasks := make([]*types.Task, 0, len(input.Tasks))
    for i, t := range input.Tasks {
      tasks = append(tasks, &types.Task{
        ID:          uuid.New(),
        TopicID:     topic.ID,
        Title:       t.Title,
        Description: t.Description,
        Position:    i + 1,
        CreatedAt:   now,
        UpdatedAt:   now,
      })
    }
    _, err := ts.taskRepo.Create(ctx, txx, tasks)
    return err
  })
  if err != nil {
    return nil, err
  }

  topic.Tasks, err = ts.taskRepo.GetByTopicIDs(ctx, tx, []uuid.UUID{topic.ID})
  if err != nil {
    return nil, fmt.Errorf("reload tasks: %w", err)
  }
  return topic, nil
}

func (ts *topicService) UpdateTopic(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.RoadmapTopic, error) {
  existing, err := ts.topicRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("load topic: %w", err)
  }
  if len(existing) == 0 || existing[0] == nil {
    return nil, ErrTopicNotFound
  }
  if len(updates) > 0 {
    if err := ts.topicRepo.UpdateFields(ctx, tx, id, updates); err != nil {
      return nil, fmt.Errorf("update topic: %w", err)
    }
  }
  reloaded, err := ts.topicRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil || len(reloaded) == 0 {
    return nil, fmt.Errorf("reload topic: %w", err)
  }
  topic := reloaded[0]
  topic.Tasks, err = ts.taskRepo.GetByTopicIDs(ctx, tx, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("reload tasks: %w", err)
  }
  return topic, nil
}

// SetTaskCompletion flips a task and rolls the change up into the parent
// topic's completed_tasks counter, atomically.
func (ts *topicService) SetTaskCompletion(ctx context.Context, taskID uuid.UUID, completed bool) (*types.Task, error) {
  var task *types.Task
  err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    loaded, err := ts.taskRepo.GetByIDs(ctx, tx, []uuid.UUID{taskID})
    if err != nil {
      return fmt.Errorf("load task: %w", err)
    }
    if len(loaded) == 0 || loaded[0] == nil {
      return ErrTaskNotFound
    }
    task = loaded[0]
    if task.Completed == completed {
      return nil
    }

    if err := ts.taskRepo.UpdateFields(ctx, tx, taskID, map[string]interface{}{
      "completed": completed,
    }); err != nil {
      return fmt.Errorf("update task: %w", err)
    }

    delta := gorm.Expr("completed_tasks + 1")
    if !completed {
      delta = gorm.Expr("completed_tasks - 1")
    }
    if err := ts.topicRepo.UpdateFields(ctx, tx, task.TopicID, map[string]interface{}{
      "completed_tasks": delta,
    }); err != nil {
      return fmt.Errorf("update topic counter: %w", err)
    }
    task.Completed = completed
    return nil
  })
  if err != nil {
    return nil, err
  }
  return task, nil
}

func (ts *topicService) SoftDeleteTopic(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  existing, err := ts.topicRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil {
    return fmt.Errorf("load topic: %w", err)
  }
  if len(existing) == 0 || existing[0] == nil {
    return ErrTopicNotFound
  }
  if err := ts.topicRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
    return fmt.Errorf("delete topic: %w", err)
  }
  return nil
}

func (ts *topicService) resolve(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return ts.db
}
