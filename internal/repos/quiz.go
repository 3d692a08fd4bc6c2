package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/types"
)

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error)
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Quiz, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(quizzes) == 0 {
		return []*types.Quiz{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Quiz
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
