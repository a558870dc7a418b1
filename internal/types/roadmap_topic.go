package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoadmapTopic is one step in the learning sequence. Title is unique within
// its roadmap; the composite unique index is what makes generation dedup
// safe under concurrent writers.
type RoadmapTopic struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoadmapID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_roadmap_topic_title" json:"roadmap_id"`
	Roadmap        *Roadmap       `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	Title          string         `gorm:"column:title;not null;uniqueIndex:idx_roadmap_topic_title" json:"title"`
	Description    string         `gorm:"column:description" json:"description"`
	Position       int            `gorm:"column:position;not null;default:0" json:"position"`
	TotalTasks     int            `gorm:"column:total_tasks;not null;default:0" json:"total_tasks"`
	CompletedTasks int            `gorm:"column:completed_tasks;not null;default:0" json:"completed_tasks"`
	Tasks          []*Task        `gorm:"foreignKey:TopicID;references:ID" json:"tasks,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RoadmapTopic) TableName() string { return "roadmap_topic" }
