package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roadmap is a user's single career path. At most one live (non-deleted)
// roadmap exists per user; internal/db adds the partial unique index that
// backs this.
type Roadmap struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Role      string          `gorm:"column:role;not null" json:"role"`
	Details   datatypes.JSON  `gorm:"column:details;type:jsonb" json:"details"`
	Topics    []*RoadmapTopic `gorm:"foreignKey:RoadmapID;references:ID" json:"topics,omitempty"`
	Courses   []*Course       `gorm:"foreignKey:RoadmapID;references:ID" json:"courses,omitempty"`
	CreatedAt time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Roadmap) TableName() string { return "roadmap" }
