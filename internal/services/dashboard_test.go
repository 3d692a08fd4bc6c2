package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/types"
)

func TestAverageProgress(t *testing.T) {
	cases := []struct {
		name     string
		progress []int
		want     int
	}{
		{name: "no enrollments", progress: nil, want: 0},
		{name: "single", progress: []int{40}, want: 40},
		{name: "rounds up", progress: []int{50, 75}, want: 63},
		{name: "rounds down", progress: []int{10, 11, 10}, want: 10},
		{name: "all complete", progress: []int{100, 100}, want: 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enrollments := make([]*types.Enrollment, 0, len(tc.progress))
			for _, p := range tc.progress {
				enrollments = append(enrollments, &types.Enrollment{Progress: p})
			}
			if got := averageProgress(enrollments); got != tc.want {
				t.Fatalf("averageProgress=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestDashboardRoleBranching(t *testing.T) {
	studentID := uuid.New()
	teacherID := uuid.New()
	rolelessID := uuid.New()
	courseID := uuid.New()

	userRepo := &fakeUserRepo{users: []*types.User{
		{ID: studentID, Role: types.RoleStudent, FullName: "Sam Student", StreakCount: 4},
		{ID: teacherID, Role: types.RoleTeacher, FullName: "Tess Teacher"},
		{ID: rolelessID, Role: "admin"},
	}}
	ds := &dashboardService{
		log:      testLogger(),
		userRepo: userRepo,
		courseRepo: &fakeCourseRepo{stats: []*repos.CourseStatsRow{
			{ID: courseID, TeacherID: teacherID, Title: "Intro to Go", EnrollmentCount: 3, QuizCount: 2},
			{ID: uuid.New(), TeacherID: teacherID, Title: "Advanced Go", EnrollmentCount: 1, QuizCount: 0},
		}},
		enrollmentRepo: &fakeEnrollmentRepo{enrollments: []*types.Enrollment{
			{ID: uuid.New(), StudentID: studentID, CourseID: courseID, Progress: 50},
			{ID: uuid.New(), StudentID: studentID, CourseID: uuid.New(), Progress: 100},
		}},
		badgeRepo: &fakeBadgeRepo{badges: []*types.Badge{
			{ID: uuid.New(), StudentID: studentID, BadgeType: "first_course"},
		}},
	}

	t.Run("student", func(t *testing.T) {
		got, err := ds.Get(ctxForUser(studentID, types.RoleStudent))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Role != types.RoleStudent || got.Student == nil || got.Teacher != nil {
			t.Fatalf("unexpected shape: %+v", got)
		}
		if len(got.Student.Enrollments) != 2 {
			t.Fatalf("enrollments = %d, want 2", len(got.Student.Enrollments))
		}
		if got.Student.AverageProgress != 75 {
			t.Fatalf("average progress = %d, want 75", got.Student.AverageProgress)
		}
		if len(got.Student.Badges) != 1 {
			t.Fatalf("badges = %d, want 1", len(got.Student.Badges))
		}
		if got.Student.StreakCount != 4 {
			t.Fatalf("streak = %d, want 4", got.Student.StreakCount)
		}
	})

	t.Run("teacher", func(t *testing.T) {
		got, err := ds.Get(ctxForUser(teacherID, types.RoleTeacher))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Role != types.RoleTeacher || got.Teacher == nil || got.Student != nil {
			t.Fatalf("unexpected shape: %+v", got)
		}
		if got.Teacher.TotalCourses != 2 {
			t.Fatalf("total courses = %d, want 2", got.Teacher.TotalCourses)
		}
		if got.Teacher.TotalEnrollments != 4 {
			t.Fatalf("total enrollments = %d, want 4", got.Teacher.TotalEnrollments)
		}
		if got.Teacher.TotalQuizzes != 2 {
			t.Fatalf("total quizzes = %d, want 2", got.Teacher.TotalQuizzes)
		}
	})

	t.Run("unassigned role", func(t *testing.T) {
		if _, err := ds.Get(ctxForUser(rolelessID, "admin")); !errors.Is(err, ErrNoRoleAssigned) {
			t.Fatalf("err = %v, want ErrNoRoleAssigned", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := ds.Get(ctxForUser(uuid.New(), types.RoleStudent)); err == nil {
			t.Fatal("expected error for unknown user")
		}
	})
}

func TestStudentDashboardEmptyCollections(t *testing.T) {
	studentID := uuid.New()
	ds := &dashboardService{
		log:            testLogger(),
		userRepo:       &fakeUserRepo{users: []*types.User{{ID: studentID, Role: types.RoleStudent}}},
		courseRepo:     &fakeCourseRepo{},
		enrollmentRepo: &fakeEnrollmentRepo{},
		badgeRepo:      &fakeBadgeRepo{},
	}
	got, err := ds.Get(ctxForUser(studentID, types.RoleStudent))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Student.Enrollments == nil || got.Student.Badges == nil {
		t.Fatal("collections must be empty slices, not nil")
	}
	if got.Student.AverageProgress != 0 {
		t.Fatalf("average progress = %d, want 0", got.Student.AverageProgress)
	}
}
