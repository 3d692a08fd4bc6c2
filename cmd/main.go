package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnhub/learnhub-backend/internal/db"
	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/middleware"
	"github.com/learnhub/learnhub-backend/internal/observability"
	"github.com/learnhub/learnhub-backend/internal/repos"
	"github.com/learnhub/learnhub-backend/internal/server"
	"github.com/learnhub/learnhub-backend/internal/services"
	"github.com/learnhub/learnhub-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "learnhub-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(ctx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (rate limiting only; the API works without it)
	var redisClient *redis.Client
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	if redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unreachable, rate limiting disabled", "error", err)
			redisClient = nil
		}
		cancel()
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	courseRepo := repos.NewCourseRepo(thePG, log)
	enrollmentRepo := repos.NewEnrollmentRepo(thePG, log)
	badgeRepo := repos.NewBadgeRepo(thePG, log)
	quizRepo := repos.NewQuizRepo(thePG, log)
	quizQuestionRepo := repos.NewQuizQuestionRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	aiClient, err := services.NewAIFunctionsClient(log)
	if err != nil {
		log.Error("Could not init AIFunctionsClient", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo)
	courseService := services.NewCourseService(thePG, log, courseRepo)
	enrollmentService := services.NewEnrollmentService(thePG, log, enrollmentRepo, courseRepo)
	dashboardService := services.NewDashboardService(thePG, log, userRepo, courseRepo, enrollmentRepo, badgeRepo)
	quizService := services.NewQuizService(thePG, log, courseRepo, quizRepo, quizQuestionRepo, aiClient)
	chatService := services.NewChatService(log, courseRepo, aiClient)
	videoSearchService := services.NewVideoSearchService(log)

	// Handlers
	log.Info("Setting up handlers from main...")
	healthcheckHandler := handlers.NewHealthcheckHandler()
	authHandler := handlers.NewAuthHandler(log, authService)
	userHandler := handlers.NewUserHandler(userService)
	courseHandler := handlers.NewCourseHandler(log, courseService)
	enrollmentHandler := handlers.NewEnrollmentHandler(log, enrollmentService)
	dashboardHandler := handlers.NewDashboardHandler(log, dashboardService)
	quizHandler := handlers.NewQuizHandler(log, quizService)
	chatHandler := handlers.NewChatHandler(log, chatService)
	videoSearchHandler := handlers.NewVideoSearchHandler(log, videoSearchService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	rateLimiter := middleware.NewRateLimiter(log, redisClient)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                log,
		AuthMiddleware:     authMiddleware,
		RateLimiter:        rateLimiter,
		HealthcheckHandler: healthcheckHandler,
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		CourseHandler:      courseHandler,
		EnrollmentHandler:  enrollmentHandler,
		DashboardHandler:   dashboardHandler,
		QuizHandler:        quizHandler,
		ChatHandler:        chatHandler,
		VideoSearchHandler: videoSearchHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
