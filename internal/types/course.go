package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is a recommended external course for a roadmap. The (roadmap_id,
// course_link) pair is the dedup key for generation.
type Course struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoadmapID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_roadmap_course_link" json:"roadmap_id"`
	Roadmap     *Roadmap       `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Instructor  string         `gorm:"column:instructor" json:"instructor"`
	CourseLink  string         `gorm:"column:course_link;not null;uniqueIndex:idx_roadmap_course_link" json:"course_link"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }
