package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/learnhub/learnhub-backend/internal/types"
)

func TestEnroll(t *testing.T) {
	courseID := uuid.New()
	studentID := uuid.New()
	courseRepo := &fakeCourseRepo{courses: []*types.Course{{ID: courseID, Title: "Intro to Go"}}}

	t.Run("creates enrollment for the session user", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{}
		es := &enrollmentService{log: testLogger(), enrollmentRepo: repo, courseRepo: courseRepo}

		got, err := es.Enroll(ctxForUser(studentID, types.RoleStudent), courseID)
		if err != nil {
			t.Fatalf("Enroll: %v", err)
		}
		if got.StudentID != studentID || got.CourseID != courseID {
			t.Fatalf("enrollment = %+v", got)
		}
		if len(repo.enrollments) != 1 {
			t.Fatalf("stored %d enrollments, want 1", len(repo.enrollments))
		}
	})

	t.Run("duplicate pair maps to ErrAlreadyEnrolled", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{createErr: &pgconn.PgError{Code: "23505", ConstraintName: "idx_enrollment_student_course"}}
		es := &enrollmentService{log: testLogger(), enrollmentRepo: repo, courseRepo: courseRepo}

		if _, err := es.Enroll(ctxForUser(studentID, types.RoleStudent), courseID); !errors.Is(err, ErrAlreadyEnrolled) {
			t.Fatalf("err = %v, want ErrAlreadyEnrolled", err)
		}
	})

	t.Run("other insert failures pass through", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{createErr: &pgconn.PgError{Code: "23503"}}
		es := &enrollmentService{log: testLogger(), enrollmentRepo: repo, courseRepo: courseRepo}

		_, err := es.Enroll(ctxForUser(studentID, types.RoleStudent), courseID)
		if err == nil || errors.Is(err, ErrAlreadyEnrolled) {
			t.Fatalf("err = %v, want generic failure", err)
		}
	})

	t.Run("unknown course", func(t *testing.T) {
		es := &enrollmentService{log: testLogger(), enrollmentRepo: &fakeEnrollmentRepo{}, courseRepo: courseRepo}
		if _, err := es.Enroll(ctxForUser(studentID, types.RoleStudent), uuid.New()); !errors.Is(err, ErrCourseNotFound) {
			t.Fatalf("err = %v, want ErrCourseNotFound", err)
		}
	})

	t.Run("requires a session", func(t *testing.T) {
		es := &enrollmentService{log: testLogger(), enrollmentRepo: &fakeEnrollmentRepo{}, courseRepo: courseRepo}
		if _, err := es.Enroll(context.Background(), courseID); err == nil {
			t.Fatal("expected error without request data")
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := errors.Join(errors.New("create enrollment"), &pgconn.PgError{Code: "23505"})
	if !isUniqueViolation(wrapped) {
		t.Fatal("wrapped unique violation not detected")
	}
	if isUniqueViolation(errors.New("plain")) {
		t.Fatal("plain error misclassified")
	}
	if isUniqueViolation(nil) {
		t.Fatal("nil misclassified")
	}
}
