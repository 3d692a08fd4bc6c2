package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course       *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Description  string         `gorm:"column:description" json:"description"`
	PassingScore int            `gorm:"column:passing_score;not null;default:70" json:"passing_score"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Quiz) TableName() string { return "quiz" }
