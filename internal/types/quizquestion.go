package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz          *Quiz          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	Question      string         `gorm:"column:question;not null" json:"question"`
	Options       datatypes.JSON `gorm:"column:options;type:jsonb" json:"options"` // []string, 4 entries
	CorrectAnswer int            `gorm:"column:correct_answer;not null;default:0" json:"correct_answer"`
	Points        int            `gorm:"column:points;not null;default:10" json:"points"`
	Position      int            `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (QuizQuestion) TableName() string { return "quiz_question" }
