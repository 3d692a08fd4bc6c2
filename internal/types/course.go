package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Course struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TeacherID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"teacher_id"`
	Teacher     *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:TeacherID;references:ID" json:"teacher,omitempty"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Category    string         `gorm:"column:category" json:"category"`
	Difficulty  string         `gorm:"column:difficulty;not null;default:'medium'" json:"difficulty"`
	VideoURL    string         `gorm:"column:video_url" json:"video_url"`
	Content     string         `gorm:"column:content" json:"content"`
	CreatedAt   time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string { return "course" }
