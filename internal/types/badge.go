package types

import (
	"time"

	"github.com/google/uuid"
)

// Badge rows are written by the awarding pipeline outside this service; the
// API only ever reads them.
type Badge struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	BadgeType string    `gorm:"column:badge_type;not null" json:"badge_type"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Badge) TableName() string { return "badge" }
