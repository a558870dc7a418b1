package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/types"
)

type RoadmapTopicRepo interface {
  // InsertIgnoreDuplicate inserts the topic unless a row with the same
  // (roadmap_id, title) already exists. Reports whether a row was written.
  InsertIgnoreDuplicate(ctx context.Context, tx *gorm.DB, topic *types.RoadmapTopic) (bool, error)
  Create(ctx context.Context, tx *gorm.DB, topics []*types.RoadmapTopic) ([]*types.RoadmapTopic, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.RoadmapTopic, error)
  GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.RoadmapTopic, error)
  GetByRoadmapIDsUnscoped(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.RoadmapTopic, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
  HardDeleteByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) error
}

type roadmapTopicRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRoadmapTopicRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapTopicRepo {
  repoLog := baseLog.With("repo", "RoadmapTopicRepo")
  return &roadmapTopicRepo{db: db, log: repoLog}
}

func (tr *roadmapTopicRepo) InsertIgnoreDuplicate(ctx context.Context, tx *gorm.DB, topic *types.RoadmapTopic) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if topic == nil {
    return false, nil
  }
  result := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "roadmap_id"}, {Name: "title"}},
      DoNothing: true,
    }).
    Create(topic)
  if result.Error != nil {
    return false, result.Error
  }
  return result.RowsAffected > 0, nil
}

func (tr *roadmapTopicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.RoadmapTopic) ([]*types.RoadmapTopic, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(topics) == 0 {
    return []*types.RoadmapTopic{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&topics).Error; err != nil {
    return nil, err
  }
  return topics, nil
}

func (tr *roadmapTopicRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.RoadmapTopic, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.RoadmapTopic
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

func (tr *roadmapTopicRepo) GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.RoadmapTopic, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.RoadmapTopic
  if len(roadmapIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("roadmap_id IN ?", roadmapIDs).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *roadmapTopicRepo) GetByRoadmapIDsUnscoped(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.RoadmapTopic, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.RoadmapTopic
  if len(roadmapIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("roadmap_id IN ?", roadmapIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *roadmapTopicRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
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
    Model(&types.RoadmapTopic{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (tr *roadmapTopicRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(ids) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.RoadmapTopic{}).Error
}

func (tr *roadmapTopicRepo) HardDeleteByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(roadmapIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Unscoped().
    Where("roadmap_id IN ?", roadmapIDs).
    Delete(&types.RoadmapTopic{}).Error
}
