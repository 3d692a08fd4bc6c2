package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/types"
)

func TestListCatalogInstructorFallback(t *testing.T) {
	cs := &courseService{
		log: testLogger(),
		courseRepo: &fakeCourseRepo{stats: []*repos.CourseStatsRow{
			{ID: uuid.New(), Title: "Named", InstructorName: "Tess Teacher"},
			{ID: uuid.New(), Title: "Orphaned", InstructorName: ""},
		}},
	}
	rows, err := cs.ListCatalog(context.Background())
	if err != nil {
		t.Fatalf("ListCatalog: %v", err)
	}
	if rows[0].InstructorName != "Tess Teacher" {
		t.Fatalf("instructor = %q", rows[0].InstructorName)
	}
	if rows[1].InstructorName != "Instructor" {
		t.Fatalf("fallback instructor = %q, want Instructor", rows[1].InstructorName)
	}
}

func TestGetCourseNotFound(t *testing.T) {
	cs := &courseService{log: testLogger(), courseRepo: &fakeCourseRepo{}}
	if _, err := cs.GetCourse(context.Background(), uuid.New()); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestCreateCourse(t *testing.T) {
	teacherID := uuid.New()
	ctx := ctxForUser(teacherID, types.RoleTeacher)

	t.Run("valid input", func(t *testing.T) {
		repo := &fakeCourseRepo{}
		cs := &courseService{log: testLogger(), courseRepo: repo}
		got, err := cs.CreateCourse(ctx, CreateCourseInput{
			Title:    "  Intro to Go  ",
			VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		})
		if err != nil {
			t.Fatalf("CreateCourse: %v", err)
		}
		if got.Title != "Intro to Go" {
			t.Fatalf("title = %q, want trimmed", got.Title)
		}
		if got.TeacherID != teacherID {
			t.Fatalf("teacher id = %s, want session user", got.TeacherID)
		}
		if got.Difficulty != types.DifficultyMedium {
			t.Fatalf("difficulty = %q, want medium default", got.Difficulty)
		}
	})

	t.Run("rejects non-youtube video url", func(t *testing.T) {
		cs := &courseService{log: testLogger(), courseRepo: &fakeCourseRepo{}}
		if _, err := cs.CreateCourse(ctx, CreateCourseInput{
			Title:    "Bad video",
			VideoURL: "https://vimeo.com/12345",
		}); err == nil {
			t.Fatal("expected rejection of non-YouTube URL")
		}
	})

	t.Run("allows empty video url", func(t *testing.T) {
		cs := &courseService{log: testLogger(), courseRepo: &fakeCourseRepo{}}
		if _, err := cs.CreateCourse(ctx, CreateCourseInput{Title: "Text only"}); err != nil {
			t.Fatalf("CreateCourse: %v", err)
		}
	})

	t.Run("rejects unknown difficulty", func(t *testing.T) {
		cs := &courseService{log: testLogger(), courseRepo: &fakeCourseRepo{}}
		if _, err := cs.CreateCourse(ctx, CreateCourseInput{Title: "T", Difficulty: "impossible"}); err == nil {
			t.Fatal("expected rejection of unknown difficulty")
		}
	})

	t.Run("requires a session", func(t *testing.T) {
		cs := &courseService{log: testLogger(), courseRepo: &fakeCourseRepo{}}
		if _, err := cs.CreateCourse(context.Background(), CreateCourseInput{Title: "T"}); err == nil {
			t.Fatal("expected error without request data")
		}
	})
}
