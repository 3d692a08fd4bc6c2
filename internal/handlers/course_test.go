package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/services"
	"github.com/learnhub/learnhub-backend/internal/types"
)

type fakeCourseService struct {
	rows []*repos.CourseStatsRow
}

func (f *fakeCourseService) ListCatalog(ctx context.Context) ([]*repos.CourseStatsRow, error) {
	return f.rows, nil
}

func (f *fakeCourseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*repos.CourseStatsRow, error) {
	for _, row := range f.rows {
		if row.ID == courseID {
			return row, nil
		}
	}
	return nil, services.ErrCourseNotFound
}

func (f *fakeCourseService) CreateCourse(ctx context.Context, input services.CreateCourseInput) (*types.Course, error) {
	return &types.Course{ID: uuid.New(), Title: input.Title}, nil
}

func newCourseRouter(t *testing.T, svc services.CourseService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewCourseHandler(log, svc)
	r := gin.New()
	r.GET("/api/courses", h.ListCourses)
	r.GET("/api/courses/:id", h.GetCourse)
	return r
}

func TestGetCourseEmbedsVideoFields(t *testing.T) {
	courseID := uuid.New()
	r := newCourseRouter(t, &fakeCourseService{rows: []*repos.CourseStatsRow{{
		ID:       courseID,
		Title:    "Intro to Go",
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses/"+courseID.String(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Course struct {
			Title    string `json:"title"`
			VideoID  string `json:"video_id"`
			EmbedURL string `json:"embed_url"`
		} `json:"course"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Course.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("video_id = %q", body.Course.VideoID)
	}
	if body.Course.EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("embed_url = %q", body.Course.EmbedURL)
	}
}

func TestGetCourseNotFoundIsDistinct(t *testing.T) {
	r := newCourseRouter(t, &fakeCourseService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses/"+uuid.New().String(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "course_not_found" {
		t.Fatalf("code = %q, want course_not_found", envelope.Error.Code)
	}
}

func TestGetCourseRejectsBadID(t *testing.T) {
	r := newCourseRouter(t, &fakeCourseService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListCoursesOmitsPlayerFieldsWithoutVideo(t *testing.T) {
	r := newCourseRouter(t, &fakeCourseService{rows: []*repos.CourseStatsRow{
		{ID: uuid.New(), Title: "Text only", InstructorName: "Tess"},
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Courses []map[string]any `json:"courses"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Courses) != 1 {
		t.Fatalf("got %d courses, want 1", len(body.Courses))
	}
	if _, ok := body.Courses[0]["embed_url"]; ok {
		t.Fatal("embed_url must be omitted when there is no video")
	}
}
