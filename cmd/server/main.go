package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightboard/quiz-service/internal/cache"
	"github.com/brightboard/quiz-service/internal/config"
	"github.com/brightboard/quiz-service/internal/gamification"
	"github.com/brightboard/quiz-service/internal/handlers"
	"github.com/brightboard/quiz-service/internal/middleware"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories/postgres"
	"github.com/brightboard/quiz-service/internal/services"
	"github.com/brightboard/quiz-service/internal/session"
	"github.com/brightboard/quiz-service/internal/utils"
	"github.com/brightboard/quiz-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := utils.NewLogger(cfg.Environment)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.Quiz{},
		&models.Question{},
		&models.Attempt{},
		&models.Result{},
	); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("event publisher init failed", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	middleware.InitAuth(cfg)

	repo := postgres.NewRepository(db)
	badges := gamification.NewRegistry()
	validate := utils.NewValidator()

	leaderboardService := services.NewLeaderboardService(repo, cache.NewLeaderboardCache(redisClient), logger)

	// The expiry hook and the attempt service reference each other, so the
	// manager is built first with a closure over the late-bound service.
	var attemptService *services.AttemptService
	manager := session.NewManager(logger, func(attemptID uint, outcome *session.Outcome) {
		attemptService.PublishCompletion(context.Background(), attemptID, outcome)
	})
	attemptService = services.NewAttemptService(repo, manager, badges, publisher, leaderboardService, logger)

	quizService := services.NewQuizService(repo, validate, logger)
	questionService := services.NewQuestionService(repo, validate, logger)
	profileService := services.NewProfileService(repo, badges, validate, logger)
	recommendationService := services.NewRecommendationService(repo, logger)
	analyticsService := services.NewAnalyticsService(repo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go manager.Run(ctx)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handlerManager := handlers.NewHandlerManager(
		repo,
		quizService,
		questionService,
		attemptService,
		profileService,
		leaderboardService,
		recommendationService,
		analyticsService,
		logger,
	)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("quiz service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
