package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/services"
	"github.com/learnhub/learnhub-backend/internal/youtube"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

// courseView decorates a catalog row with player fields derived from the
// stored video URL.
type courseView struct {
	*repos.CourseStatsRow
	VideoID  string `json:"video_id,omitempty"`
	EmbedURL string `json:"embed_url,omitempty"`
}

func toCourseView(row *repos.CourseStatsRow) courseView {
	view := courseView{CourseStatsRow: row}
	if id, ok := youtube.ExtractVideoID(row.VideoURL); ok {
		view.VideoID = id
		view.EmbedURL = youtube.EmbedURL(id)
	}
	return view
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	rows, err := h.courseService.ListCatalog(c.Request.Context())
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
		return
	}
	views := make([]courseView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toCourseView(row))
	}
	RespondOK(c, gin.H{"courses": views})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	row, err := h.courseService.GetCourse(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("GetCourse failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "load_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"course": toCourseView(row)})
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	course, err := h.courseService.CreateCourse(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_course_failed", err)
		return
	}
	RespondCreated(c, gin.H{"course": course})
}
