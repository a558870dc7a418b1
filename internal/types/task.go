package types

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TopicID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"topic_id"`
	Topic       *RoadmapTopic `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"topic,omitempty"`
	Title       string        `gorm:"column:title;not null" json:"title"`
	Description string        `gorm:"column:description" json:"description"`
	Position    int           `gorm:"column:position;not null;default:0" json:"position"`
	Completed   bool          `gorm:"column:completed;not null;default:false" json:"completed"`
	CreatedAt   time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Task) TableName() string { return "task" }
