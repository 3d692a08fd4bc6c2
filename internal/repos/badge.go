package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/types"
)

// Badges are awarded outside this service, so the repo is read-only.
type BadgeRepo interface {
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Badge, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (r *badgeRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uuid.UUID) ([]*types.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Badge
	if len(studentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
