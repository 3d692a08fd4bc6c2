package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/requestdata"
	"github.com/learnhub/learnhub-backend/internal/types"
)

// ErrNoRoleAssigned marks an account whose role is neither student nor
// teacher. The handler reports it instead of rendering an empty dashboard.
var ErrNoRoleAssigned = errors.New("no role assigned to this account")

type StudentDashboard struct {
	Profile         *types.User         `json:"profile"`
	Enrollments     []*types.Enrollment `json:"enrollments"`
	Badges          []*types.Badge      `json:"badges"`
	AverageProgress int                 `json:"average_progress"`
	StreakCount     int                 `json:"streak_count"`
}

type TeacherDashboard struct {
	Profile          *types.User             `json:"profile"`
	Courses          []*repos.CourseStatsRow `json:"courses"`
	TotalCourses     int                     `json:"total_courses"`
	TotalEnrollments int64                   `json:"total_enrollments"`
	TotalQuizzes     int64                   `json:"total_quizzes"`
}

// Dashboard is a tagged union: exactly one of Student and Teacher is set,
// matching Role.
type Dashboard struct {
	Role    string            `json:"role"`
	Student *StudentDashboard `json:"student,omitempty"`
	Teacher *TeacherDashboard `json:"teacher,omitempty"`
}

type DashboardService interface {
	Get(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	courseRepo     repos.CourseRepo
	enrollmentRepo repos.EnrollmentRepo
	badgeRepo      repos.BadgeRepo
}

func NewDashboardService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	enrollmentRepo repos.EnrollmentRepo,
	badgeRepo repos.BadgeRepo,
) DashboardService {
	return &dashboardService{
		db:             db,
		log:            baseLog.With("service", "DashboardService"),
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		badgeRepo:      badgeRepo,
	}
}

func (ds *dashboardService) Get(ctx context.Context) (*Dashboard, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in request context")
	}
	users, err := ds.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user not found")
	}
	user := users[0]

	switch user.Role {
	case types.RoleStudent:
		return ds.studentDashboard(ctx, user)
	case types.RoleTeacher:
		return ds.teacherDashboard(ctx, user)
	default:
		return nil, ErrNoRoleAssigned
	}
}

func (ds *dashboardService) studentDashboard(ctx context.Context, user *types.User) (*Dashboard, error) {
	enrollments, err := ds.enrollmentRepo.GetByStudentIDs(ctx, nil, []uuid.UUID{user.ID})
	if err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	badges, err := ds.badgeRepo.GetByStudentIDs(ctx, nil, []uuid.UUID{user.ID})
	if err != nil {
		return nil, fmt.Errorf("load badges: %w", err)
	}
	if enrollments == nil {
		enrollments = []*types.Enrollment{}
	}
	if badges == nil {
		badges = []*types.Badge{}
	}
	return &Dashboard{
		Role: types.RoleStudent,
		Student: &StudentDashboard{
			Profile:         user,
			Enrollments:     enrollments,
			Badges:          badges,
			AverageProgress: averageProgress(enrollments),
			StreakCount:     user.StreakCount,
		},
	}, nil
}

func (ds *dashboardService) teacherDashboard(ctx context.Context, user *types.User) (*Dashboard, error) {
	courses, err := ds.courseRepo.GetStatsByTeacherIDs(ctx, nil, []uuid.UUID{user.ID})
	if err != nil {
		return nil, fmt.Errorf("load teacher courses: %w", err)
	}
	if courses == nil {
		courses = []*repos.CourseStatsRow{}
	}
	var totalEnrollments, totalQuizzes int64
	for _, c := range courses {
		if c.InstructorName == "" {
			c.InstructorName = user.FullName
		}
		totalEnrollments += c.EnrollmentCount
		totalQuizzes += c.QuizCount
	}
	return &Dashboard{
		Role: types.RoleTeacher,
		Teacher: &TeacherDashboard{
			Profile:          user,
			Courses:          courses,
			TotalCourses:     len(courses),
			TotalEnrollments: totalEnrollments,
			TotalQuizzes:     totalQuizzes,
		},
	}, nil
}

// averageProgress rounds to the nearest whole percent over all enrollments.
// Zero enrollments is zero progress, not a division error.
func averageProgress(enrollments []*types.Enrollment) int {
	if len(enrollments) == 0 {
		return 0
	}
	var sum float64
	for _, e := range enrollments {
		sum += float64(e.Progress)
	}
	return int(math.Round(sum / float64(len(enrollments))))
}
