package types

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_enrollment_student_course,unique,priority:1" json:"student_id"`
	Student   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index:idx_enrollment_student_course,unique,priority:2" json:"course_id"`
	Course    *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Progress  int       `gorm:"column:progress;not null;default:0" json:"progress"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollment" }
