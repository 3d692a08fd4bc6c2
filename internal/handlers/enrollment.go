package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/services"
)

type EnrollmentHandler struct {
	log               *logger.Logger
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(log *logger.Logger, enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:               log.With("handler", "EnrollmentHandler"),
		enrollmentService: enrollmentService,
	}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyEnrolled):
			RespondError(c, http.StatusConflict, "already_enrolled", errors.New("You're already enrolled in this course"))
		case errors.Is(err, services.ErrCourseNotFound):
			RespondError(c, http.StatusNotFound, "course_not_found", err)
		default:
			h.log.Error("Enroll failed", "error", err, "course_id", courseID)
			RespondError(c, http.StatusInternalServerError, "enroll_failed", err)
		}
		return
	}
	RespondCreated(c, gin.H{"enrollment": enrollment})
}
