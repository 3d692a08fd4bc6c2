package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/requestdata"
	"github.com/learnhub/learnhub-backend/internal/types"
	"github.com/learnhub/learnhub-backend/internal/youtube"
)

var ErrCourseNotFound = errors.New("course not found")

type CreateCourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	VideoURL    string `json:"video_url"`
	Content     string `json:"content"`
}

type CourseService interface {
	ListCatalog(ctx context.Context) ([]*repos.CourseStatsRow, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*repos.CourseStatsRow, error)
	CreateCourse(ctx context.Context, input CreateCourseInput) (*types.Course, error)
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
}

func NewCourseService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo) CourseService {
	return &courseService{
		db:         db,
		log:        baseLog.With("service", "CourseService"),
		courseRepo: courseRepo,
	}
}

// ListCatalog returns every course newest-first with its instructor name and
// enrollment count. Courses whose teacher row is gone still list, under a
// generic instructor label.
func (cs *courseService) ListCatalog(ctx context.Context) ([]*repos.CourseStatsRow, error) {
	rows, err := cs.courseRepo.ListWithStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	for _, row := range rows {
		if row.InstructorName == "" {
			row.InstructorName = "Instructor"
		}
	}
	return rows, nil
}

func (cs *courseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*repos.CourseStatsRow, error) {
	rows, err := cs.courseRepo.GetStatsByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrCourseNotFound
	}
	row := rows[0]
	if row.InstructorName == "" {
		row.InstructorName = "Instructor"
	}
	return row, nil
}

func (cs *courseService) CreateCourse(ctx context.Context, input CreateCourseInput) (*types.Course, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in request context")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("a course title is required")
	}
	difficulty := strings.ToLower(strings.TrimSpace(input.Difficulty))
	if difficulty == "" {
		difficulty = types.DifficultyMedium
	}
	switch difficulty {
	case types.DifficultyEasy, types.DifficultyMedium, types.DifficultyHard:
	default:
		return nil, fmt.Errorf("difficulty must be easy, medium or hard")
	}
	videoURL := strings.TrimSpace(input.VideoURL)
	if videoURL != "" && !youtube.IsValidURL(videoURL) {
		return nil, fmt.Errorf("video_url must be a YouTube watch or youtu.be link")
	}

	course := &types.Course{
		ID:          uuid.New(),
		TeacherID:   rd.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Difficulty:  difficulty,
		VideoURL:    videoURL,
		Content:     input.Content,
	}
	if _, err := cs.courseRepo.Create(ctx, nil, []*types.Course{course}); err != nil {
		cs.log.Error("CreateCourse failed", "error", err, "teacher_id", rd.UserID)
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}
