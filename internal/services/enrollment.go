package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/requestdata"
	"github.com/learnhub/learnhub-backend/internal/types"
)

// ErrAlreadyEnrolled distinguishes the unique-pair violation from every
// other insert failure so the handler can word the response accordingly.
var ErrAlreadyEnrolled = errors.New("already enrolled in this course")

const pgUniqueViolation = "23505"

type EnrollmentService interface {
	Enroll(ctx context.Context, courseID uuid.UUID) (*types.Enrollment, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Enrollment, error)
}

type enrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo repos.EnrollmentRepo
	courseRepo     repos.CourseRepo
}

func NewEnrollmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	enrollmentRepo repos.EnrollmentRepo,
	courseRepo repos.CourseRepo,
) EnrollmentService {
	return &enrollmentService{
		db:             db,
		log:            baseLog.With("service", "EnrollmentService"),
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
	}
}

func (es *enrollmentService) Enroll(ctx context.Context, courseID uuid.UUID) (*types.Enrollment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in request context")
	}

	courses, err := es.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, ErrCourseNotFound
	}

	enrollment := &types.Enrollment{
		ID:        uuid.New(),
		StudentID: rd.UserID,
		CourseID:  courseID,
	}
	if _, err := es.enrollmentRepo.Create(ctx, nil, []*types.Enrollment{enrollment}); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyEnrolled
		}
		es.log.Error("Enroll failed", "error", err, "course_id", courseID)
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return enrollment, nil
}

func (es *enrollmentService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Enrollment, error) {
	return es.enrollmentRepo.GetByStudentIDs(ctx, nil, []uuid.UUID{studentID})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
