package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/requestdata"
	"github.com/learnhub/learnhub-backend/internal/types"
)

const (
	defaultPassingScore     = 70
	defaultQuestionPoints   = 10
	generatedQuestionCount  = 5
	generatedQuizDifficulty = "medium"
	quizQuestionOptionCount = 4
)

type CreateQuestionInput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Points        int      `json:"points"`
}

type CreateQuizInput struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	PassingScore int                   `json:"passing_score"`
	Questions    []CreateQuestionInput `json:"questions"`
}

type QuizWithQuestions struct {
	Quiz      *types.Quiz           `json:"quiz"`
	Questions []*types.QuizQuestion `json:"questions"`
}

type CourseQuizzes struct {
	Course  *repos.CourseStatsRow `json:"course"`
	Quizzes []*QuizWithQuestions  `json:"quizzes"`
}

type QuizService interface {
	GetCourseQuizzes(ctx context.Context, courseID uuid.UUID) (*CourseQuizzes, error)
	GenerateQuestions(ctx context.Context, courseID uuid.UUID) ([]GeneratedQuestion, error)
	CreateQuiz(ctx context.Context, courseID uuid.UUID, input CreateQuizInput) (*QuizWithQuestions, error)
}

type quizService struct {
	db               *gorm.DB
	log              *logger.Logger
	courseRepo       repos.CourseRepo
	quizRepo         repos.QuizRepo
	quizQuestionRepo repos.QuizQuestionRepo
	aiClient         AIFunctionsClient
	runInTx          func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewQuizService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	quizRepo repos.QuizRepo,
	quizQuestionRepo repos.QuizQuestionRepo,
	aiClient AIFunctionsClient,
) QuizService {
	return &quizService{
		db:               db,
		log:              baseLog.With("service", "QuizService"),
		courseRepo:       courseRepo,
		quizRepo:         quizRepo,
		quizQuestionRepo: quizQuestionRepo,
		aiClient:         aiClient,
		runInTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
	}
}

func (qs *quizService) GetCourseQuizzes(ctx context.Context, courseID uuid.UUID) (*CourseQuizzes, error) {
	rows, err := qs.courseRepo.GetStatsByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrCourseNotFound
	}

	quizzes, err := qs.quizRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	quizIDs := make([]uuid.UUID, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}
	questions, err := qs.quizQuestionRepo.GetByQuizIDs(ctx, nil, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("load quiz questions: %w", err)
	}

	byQuiz := make(map[uuid.UUID][]*types.QuizQuestion, len(quizzes))
	for _, q := range questions {
		byQuiz[q.QuizID] = append(byQuiz[q.QuizID], q)
	}
	out := make([]*QuizWithQuestions, 0, len(quizzes))
	for _, quiz := range quizzes {
		qq := byQuiz[quiz.ID]
		if qq == nil {
			qq = []*types.QuizQuestion{}
		}
		out = append(out, &QuizWithQuestions{Quiz: quiz, Questions: qq})
	}
	return &CourseQuizzes{Course: rows[0], Quizzes: out}, nil
}

// GenerateQuestions asks the AI function for a question set seeded from the
// course title and description. The result is a draft for the teacher to
// edit, nothing is persisted here.
func (qs *quizService) GenerateQuestions(ctx context.Context, courseID uuid.UUID) ([]GeneratedQuestion, error) {
	courses, err := qs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, ErrCourseNotFound
	}
	course := courses[0]

	resp, err := qs.aiClient.GenerateQuiz(ctx, GenerateQuizRequest{
		CourseTitle:       course.Title,
		CourseDescription: course.Description,
		NumberOfQuestions: generatedQuestionCount,
		Difficulty:        generatedQuizDifficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	if resp == nil || len(resp.Questions) == 0 {
		return nil, fmt.Errorf("no questions generated")
	}
	return resp.Questions, nil
}

func (qs *quizService) CreateQuiz(ctx context.Context, courseID uuid.UUID, input CreateQuizInput) (*QuizWithQuestions, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in request context")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("a quiz title is required")
	}
	passingScore := input.PassingScore
	if passingScore <= 0 {
		passingScore = defaultPassingScore
	}
	if passingScore > 100 {
		return nil, fmt.Errorf("passing_score must be at most 100")
	}

	courses, err := qs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, ErrCourseNotFound
	}

	quiz := &types.Quiz{
		ID:           uuid.New(),
		CourseID:     courseID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		PassingScore: passingScore,
	}
	questions, err := buildQuestionRows(quiz.ID, input.Questions)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("a quiz needs at least one complete question")
	}

	// Quiz and questions land together or not at all.
	err = qs.runInTx(ctx, func(tx *gorm.DB) error {
		if _, cErr := qs.quizRepo.Create(ctx, tx, []*types.Quiz{quiz}); cErr != nil {
			return fmt.Errorf("create quiz: %w", cErr)
		}
		if _, cErr := qs.quizQuestionRepo.Create(ctx, tx, questions); cErr != nil {
			return fmt.Errorf("create quiz questions: %w", cErr)
		}
		return nil
	})
	if err != nil {
		qs.log.Error("CreateQuiz failed", "error", err, "course_id", courseID)
		return nil, err
	}
	return &QuizWithQuestions{Quiz: quiz, Questions: questions}, nil
}

// buildQuestionRows drops entries with a blank question text and assigns
// positions from the surviving order. A non-blank question with a malformed
// option set or an out-of-range answer index fails the whole request.
func buildQuestionRows(quizID uuid.UUID, inputs []CreateQuestionInput) ([]*types.QuizQuestion, error) {
	rows := make([]*types.QuizQuestion, 0, len(inputs))
	for i, in := range inputs {
		text := strings.TrimSpace(in.Question)
		if text == "" {
			continue
		}
		if len(in.Options) != quizQuestionOptionCount {
			return nil, fmt.Errorf("question %d must have exactly %d options", i+1, quizQuestionOptionCount)
		}
		for _, opt := range in.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, fmt.Errorf("question %d has a blank option", i+1)
			}
		}
		if in.CorrectAnswer < 0 || in.CorrectAnswer >= quizQuestionOptionCount {
			return nil, fmt.Errorf("question %d has an out-of-range correct_answer", i+1)
		}
		points := in.Points
		if points <= 0 {
			points = defaultQuestionPoints
		}
		encoded, err := json.Marshal(in.Options)
		if err != nil {
			return nil, fmt.Errorf("encode options for question %d: %w", i+1, err)
		}
		rows = append(rows, &types.QuizQuestion{
			ID:            uuid.New(),
			QuizID:        quizID,
			Question:      text,
			Options:       datatypes.JSON(encoded),
			CorrectAnswer: in.CorrectAnswer,
			Points:        points,
			Position:      len(rows),
		})
	}
	return rows, nil
}
