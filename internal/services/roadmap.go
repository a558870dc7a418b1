package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/masarhq/masar-backend/internal/logger"
  "github.com/masarhq/masar-backend/internal/repos"
  "github.com/masarhq/masar-backend/internal/types"
)

var ErrRoadmapNotFound = errors.New("roadmap not found")

type RoadmapService interface {
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Roadmap, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Roadmap, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, role *string, details json.RawMessage) (*types.Roadmap, error)
  SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type roadmapService struct {
  db          *gorm.DB
  log         *logger.Logger
  roadmapRepo repos.RoadmapRepo
}

func NewRoadmapService(db *gorm.DB, baseLog *logger.Logger, roadmapRepo repos.RoadmapRepo) RoadmapService {
  serviceLog := baseLog.With("service", "RoadmapService")
  return &roadmapService{db: db, log: serviceLog, roadmapRepo: roadmapRepo}
}

func (rs *roadmapService) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Roadmap, error) {
  roadmap, err := rs.roadmapRepo.GetPopulatedByID(ctx, tx, id)
  if err != nil {
    return nil, fmt.Errorf("get roadmap: %w", err)
  }
  if roadmap == nil {
    return nil, ErrRoadmapNotFound
  }
  return roadmap, nil
}

func (rs *roadmapService) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Roadmap, error) {
  roadmaps, err := rs.roadmapRepo.GetAllPopulated(ctx, tx)
  if err != nil {
    return nil, fmt.Errorf("list roadmaps: %w", err)
  }
  return roadmaps, nil
}

func (rs *roadmapService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, role *string, details json.RawMessage) (*types.Roadmap, error) {
  existing, err := rs.roadmapRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil {
    return nil, fmt.Errorf("load roadmap: %w", err)
  }
  if len(existing) == 0 || existing[0] == nil {
    return nil, ErrRoadmapNotFound
  }

  updates := map[string]interface{}{}
  if role != nil {
    updates["role"] = *role
  }
  if details != nil {
    updates["details"] = datatypes.JSON(details)
  }
  if len(updates) > 0 {
    if err := rs.roadmapRepo.UpdateFields(ctx, tx, id, updates); err != nil {
      return nil, fmt.Errorf("update roadmap: %w", err)
    }
  }
  return rs.GetByID(ctx, tx, id)
}

func (rs *roadmapService) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  existing, err := rs.roadmapRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
  if err != nil {
    return fmt.Errorf("load roadmap: %w", err)
  }
  if len(existing) == 0 || existing[0] == nil {
    return ErrRoadmapNotFound
  }
  if err := rs.roadmapRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
    return fmt.Errorf("delete roadmap: %w", err)
  }
  return nil
}
