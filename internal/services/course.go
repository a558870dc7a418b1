package services

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/repos"
  "github.com/masarhq/masar-backend/internal/types"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseService interface {
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Course, error)
  SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type courseService struct {
  db         *gorm.DB
  log        *logger.Logger
  courseRepo repos.CourseRepo
}

func NewCourseService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo) CourseService {
  serviceLog := baseLog.With("service", "CourseService")
  return &courseService{db: db, log: serviceLog, courseRepo: courseRepo}
}

func (cs *courseService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (*types.Course, error) {
  existing, err := cs.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("load course: %w", err)
  }
  if len(existing) == 0 || existing[0] == nil {
    return nil, ErrCourseNotFound
  }
  if len(updates) > 0 {
    if err := cs.courseRepo.UpdateFields(ctx, tx, id, updates); err != nil {
      return nil, fmt.Errorf("update course: %w", err)
    }
  }
  reloaded, err := cs.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil || len(reloaded) == 0 {
    return nil, fmt.Errorf("reload course: %w", err)
  }
  return reloaded[0], nil
}

func (cs *courseService) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  existing, err := cs.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil {
    return fmt.Errorf("load course: %w", err)
  }
  if len(existing) == 0 || existing[0] == nil {
    return ErrCourseNotFound
  }
  if err := cs.courseRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
    return fmt.Errorf("delete course: %w", err)
  }
  return nil
}
