package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/middleware"
	"github.com/learnhub/learnhub-backend/internal/observability"
)

type RouterConfig struct {
	Log                *logger.Logger
	AuthMiddleware     *middleware.AuthMiddleware
	RateLimiter        *middleware.RateLimiter
	HealthcheckHandler *handlers.HealthcheckHandler
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	CourseHandler      *handlers.CourseHandler
	EnrollmentHandler  *handlers.EnrollmentHandler
	DashboardHandler   *handlers.DashboardHandler
	QuizHandler        *handlers.QuizHandler
	ChatHandler        *handlers.ChatHandler
	VideoSearchHandler *handlers.VideoSearchHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	if observability.Enabled() {
		router.Use(otelgin.Middleware("learnhub-backend"))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// AI endpoints carry per-user limits since each request fans out to a
	// paid upstream call.
	aiLimit := func(key string) gin.HandlerFunc {
		return cfg.RateLimiter.Limit(key, 20, time.Minute)
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.GET("/courses", cfg.CourseHandler.ListCourses)
		api.GET("/courses/:id", cfg.CourseHandler.GetCourse)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/me", cfg.UserHandler.GetMe)
	protected.GET("/dashboard", cfg.DashboardHandler.GetDashboard)
	// Courses
	protected.POST("/courses", cfg.CourseHandler.CreateCourse)
	protected.POST("/courses/:id/enroll", cfg.EnrollmentHandler.Enroll)
	// Quizzes
	protected.GET("/courses/:id/quizzes", cfg.QuizHandler.ListCourseQuizzes)
	protected.POST("/courses/:id/quizzes", cfg.QuizHandler.CreateQuiz)
	protected.POST("/courses/:id/quizzes/generate", aiLimit("quiz_generate"), cfg.QuizHandler.GenerateQuestions)
	// Chat
	protected.GET("/courses/:id/chat", cfg.ChatHandler.GetTranscript)
	protected.POST("/courses/:id/chat", aiLimit("chat_send"), cfg.ChatHandler.SendMessage)
	// Video search
	protected.GET("/videos/search", cfg.VideoSearchHandler.Search)

	return router
}
