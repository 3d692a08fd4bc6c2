package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/types"
)

type QuizQuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, questions []*types.QuizQuestion) ([]*types.QuizQuestion, error)
	GetByQuizIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) ([]*types.QuizQuestion, error)
}

type quizQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuizQuestionRepo {
	return &quizQuestionRepo{db: db, log: baseLog.With("repo", "QuizQuestionRepo")}
}

func (r *quizQuestionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.QuizQuestion) ([]*types.QuizQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(questions) == 0 {
		return []*types.QuizQuestion{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizQuestionRepo) GetByQuizIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) ([]*types.QuizQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.QuizQuestion
	if len(quizIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("quiz_id IN ?", quizIDs).
		Order("quiz_id, position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
