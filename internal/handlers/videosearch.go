package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/services"
)

type VideoSearchHandler struct {
	log           *logger.Logger
	searchService services.VideoSearchService
}

func NewVideoSearchHandler(log *logger.Logger, searchService services.VideoSearchService) *VideoSearchHandler {
	return &VideoSearchHandler{
		log:           log.With("handler", "VideoSearchHandler"),
		searchService: searchService,
	}
}

func (h *VideoSearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	suggestions, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		h.log.Warn("video search failed", "error", err)
		RespondError(c, http.StatusBadGateway, "video_search_failed", err)
		return
	}
	RespondOK(c, gin.H{"suggestions": suggestions})
}
