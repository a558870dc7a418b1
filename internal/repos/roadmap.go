package repos

import (
  "context"
  "errors"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/types"
)

type RoadmapRepo interface {
  Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.Roadmap) ([]*types.Roadmap, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Roadmap, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Roadmap, error)

  // GetPopulatedByID loads a roadmap with its topics (tasks nested,
  // position order) and courses. Returns nil when not found.
  GetPopulatedByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Roadmap, error)
  GetAllPopulated(ctx context.Context, tx *gorm.DB) ([]*types.Roadmap, error)

  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
  HardDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type roadmapRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
  repoLog := baseLog.With("repo", "RoadmapRepo")
  return &roadmapRepo{db: db, log: repoLog}
}

func (rr *roadmapRepo) Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.Roadmap) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(roadmaps) == 0 {
    return []*types.Roadmap{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&roadmaps).Error; err != nil {
    return nil, err
  }
  return roadmaps, nil
}

func (rr *roadmapRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Roadmap
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

func (rr *roadmapRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Roadmap
  if len(userIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *roadmapRepo) GetPopulatedByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if id == uuid.Nil {
    return nil, nil
  }

  var roadmap types.Roadmap
  err := transaction.WithContext(ctx).
    Preload("Topics", func(db *gorm.DB) *gorm.DB {
      return db.Order("roadmap_topic.position ASC")
    }).
    Preload("Topics.Tasks", func(db *gorm.DB) *gorm.DB {
      return db.Order("task.position ASC")
    }).
    Preload("Courses").
    Where("id = ?", id).
    First(&roadmap).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &roadmap, nil
}

func (rr *roadmapRepo) GetAllPopulated(ctx context.Context, tx *gorm.DB) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Roadmap
  if err := transaction.WithContext(ctx).
    Preload("Topics", func(db *gorm.DB) *gorm.DB {
      return db.Order("roadmap_topic.position ASC")
    }).
    Preload("Topics.Tasks", func(db *gorm.DB) *gorm.DB {
      return db.Order("task.position ASC")
    }).
    Preload("Courses").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *roadmapRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
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
    Model(&types.Roadmap{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (rr *roadmapRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(ids) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Roadmap{}).Error
}

func (rr *roadmapRepo) HardDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(ids) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", ids).
    Delete(&types.Roadmap{}).Error
}
