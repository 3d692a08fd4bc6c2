package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/services"
)

type QuizHandler struct {
	log         *logger.Logger
	quizService services.QuizService
}

func NewQuizHandler(log *logger.Logger, quizService services.QuizService) *QuizHandler {
	return &QuizHandler{
		log:         log.With("handler", "QuizHandler"),
		quizService: quizService,
	}
}

func (h *QuizHandler) ListCourseQuizzes(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	result, err := h.quizService.GetCourseQuizzes(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("ListCourseQuizzes failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "load_quizzes_failed", err)
		return
	}
	RespondOK(c, result)
}

func (h *QuizHandler) GenerateQuestions(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	questions, err := h.quizService.GenerateQuestions(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Warn("GenerateQuestions failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusBadGateway, "generate_quiz_failed", err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	var req services.CreateQuizInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.quizService.CreateQuiz(c.Request.Context(), courseID, req)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "create_quiz_failed", err)
		return
	}
	RespondCreated(c, result)
}
