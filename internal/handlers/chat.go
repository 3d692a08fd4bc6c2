package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/services"
)

type ChatHandler struct {
	log         *logger.Logger
	chatService services.ChatService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:         log.With("handler", "ChatHandler"),
		chatService: chatService,
	}
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

func (h *ChatHandler) GetTranscript(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	messages, err := h.chatService.GetTranscript(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("GetTranscript failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "load_chat_failed", err)
		return
	}
	RespondOK(c, gin.H{"messages": messages})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	messages, err := h.chatService.SendMessage(c.Request.Context(), courseID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSendInFlight):
			RespondError(c, http.StatusConflict, "send_in_flight", err)
		case errors.Is(err, services.ErrCourseNotFound):
			RespondError(c, http.StatusNotFound, "course_not_found", err)
		default:
			RespondError(c, http.StatusBadRequest, "send_message_failed", err)
		}
		return
	}
	RespondOK(c, gin.H{"messages": messages})
}
