package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "register_failed", err)
		return
	}
	RespondCreated(c, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	access, refresh, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "login_failed", err)
		return
	}
	RespondOK(c, tokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	access, refresh, err := h.authService.Refresh(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "refresh_failed", err)
		return
	}
	RespondOK(c, tokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.log.Warn("Logout failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "logout_failed", err)
		return
	}
	RespondOK(c, gin.H{"status": "logged_out"})
}
