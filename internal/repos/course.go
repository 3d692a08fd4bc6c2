package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/types"
)

// CourseStatsRow is the scan target for catalog and dashboard queries: one
// course row plus the joined instructor name and aggregate counts.
type CourseStatsRow struct {
	ID              uuid.UUID `gorm:"column:id" json:"id"`
	TeacherID       uuid.UUID `gorm:"column:teacher_id" json:"teacher_id"`
	Title           string    `gorm:"column:title" json:"title"`
	Description     string    `gorm:"column:description" json:"description"`
	Category        string    `gorm:"column:category" json:"category"`
	Difficulty      string    `gorm:"column:difficulty" json:"difficulty"`
	VideoURL        string    `gorm:"column:video_url" json:"video_url"`
	Content         string    `gorm:"column:content" json:"content"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	InstructorName  string    `gorm:"column:instructor_name" json:"instructor_name"`
	EnrollmentCount int64     `gorm:"column:enrollment_count" json:"enrollment_count"`
	QuizCount       int64     `gorm:"column:quiz_count" json:"quiz_count"`
}

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error)
	ListWithStats(ctx context.Context, tx *gorm.DB) ([]*CourseStatsRow, error)
	GetStatsByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*CourseStatsRow, error)
	GetStatsByTeacherIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*CourseStatsRow, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

const courseStatsSelect = `course.id, course.teacher_id, course.title, course.description,
course.category, course.difficulty, course.video_url, course.content, course.created_at,
"user".full_name AS instructor_name,
(SELECT count(*) FROM enrollment e WHERE e.course_id = course.id) AS enrollment_count,
(SELECT count(*) FROM quiz q WHERE q.course_id = course.id AND q.deleted_at IS NULL) AS quiz_count`

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(courses) == 0 {
		return []*types.Course{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Course
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) ListWithStats(ctx context.Context, tx *gorm.DB) ([]*CourseStatsRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*CourseStatsRow
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Select(courseStatsSelect).
		Joins(`LEFT JOIN "user" ON "user".id = course.teacher_id`).
		Order("course.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseRepo) GetStatsByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*CourseStatsRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*CourseStatsRow
	if len(courseIDs) == 0 {
		return rows, nil
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Select(courseStatsSelect).
		Joins(`LEFT JOIN "user" ON "user".id = course.teacher_id`).
		Where("course.id IN ?", courseIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseRepo) GetStatsByTeacherIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*CourseStatsRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*CourseStatsRow
	if len(teacherIDs) == 0 {
		return rows, nil
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Select(courseStatsSelect).
		Joins(`LEFT JOIN "user" ON "user".id = course.teacher_id`).
		Where("course.teacher_id IN ?", teacherIDs).
		Order("course.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
