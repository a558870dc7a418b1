package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/types"
)

type TaskRepo interface {
  Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Task, error)
  GetByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) ([]*types.Task, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  HardDeleteByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) error
}

type taskRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
  repoLog := baseLog.With("repo", "TaskRepo")
  return &taskRepo{db: db, log: repoLog}
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(tasks) == 0 {
    return []*types.Task{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
    return nil, err
  }
  return tasks, nil
}

func (tr *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.Task
  if len(ids) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *taskRepo) GetByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.Task
  if len(topicIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("topic_id IN ?", topicIDs).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *taskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if id == uuid.Nil {
    return nil
  }
  if updates == nil {
    updates = map[string]interface{}{}
  }
  if _, ok := updates["updated_at"]; !ok {
    updates["updated_at"] = time.Now()
  }
  return transaction.WithContext(ctx).
    Model(&types.Task{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (tr *taskRepo) HardDeleteByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(topicIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("topic_id IN ?", topicIDs).
    Delete(&types.Task{}).Error
}
