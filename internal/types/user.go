package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password     string    `gorm:"not null;column:password" json:"-"`
	FullName     string    `gorm:"not null;column:full_name" json:"full_name"`
	Role         string    `gorm:"column:role;index" json:"role"`
	StreakCount  int       `gorm:"column:streak_count;not null;default:0" json:"streak_count"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
