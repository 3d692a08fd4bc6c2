package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/types"
)

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Enrollment, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(enrollments) == 0 {
		return []*types.Enrollment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Enrollment
	if len(studentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Course").
		Where("student_id IN ?", studentIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
