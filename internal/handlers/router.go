package handlers

import (
	"log/slog"

	"github.com/brightboard/quiz-service/internal/middleware"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/brightboard/quiz-service/internal/services"
	"github.com/brightboard/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quizHandler           *QuizHandler
	questionHandler       *QuestionHandler
	attemptHandler        *AttemptHandler
	profileHandler        *ProfileHandler
	leaderboardHandler    *LeaderboardHandler
	recommendationHandler *RecommendationHandler
	analyticsHandler      *AnalyticsHandler

	repo   repositories.Repository
	logger *slog.Logger
}

func NewHandlerManager(
	repo repositories.Repository,
	quiz *services.QuizService,
	question *services.QuestionService,
	attempt *services.AttemptService,
	profile *services.ProfileService,
	leaderboard *services.LeaderboardService,
	recommendation *services.RecommendationService,
	analytics *services.AnalyticsService,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:           NewQuizHandler(quiz, question, logger),
		questionHandler:       NewQuestionHandler(question, logger),
		attemptHandler:        NewAttemptHandler(attempt, logger),
		profileHandler:        NewProfileHandler(profile, logger),
		leaderboardHandler:    NewLeaderboardHandler(leaderboard, logger),
		recommendationHandler: NewRecommendationHandler(recommendation, logger),
		analyticsHandler:      NewAnalyticsHandler(analytics, logger),
		repo:                  repo,
		logger:                logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(utils.RequestLogger(hm.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quiz-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(hm.repo))
	{
		// Profile routes
		profiles := v1.Group("/profile")
		{
			profiles.POST("", hm.profileHandler.RegisterProfile)
			profiles.GET("", hm.profileHandler.GetProfile)
			profiles.PUT("", hm.profileHandler.UpdateProfile)
			profiles.GET("/progress", hm.profileHandler.GetProgress)
			profiles.GET("/results", hm.attemptHandler.ListResults)
		}

		v1.GET("/badges", hm.profileHandler.GetBadgeCatalog)

		// Quiz routes; authoring requires the teacher role
		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)

			quizzes.POST("", middleware.RequireTeacher(), hm.quizHandler.CreateQuiz)
			quizzes.PUT("/:id", middleware.RequireTeacher(), hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", middleware.RequireTeacher(), hm.quizHandler.DeleteQuiz)

			quizzes.GET("/:id/stats", middleware.RequireTeacher(), hm.analyticsHandler.GetQuizStats)
			quizzes.GET("/:id/export", middleware.RequireTeacher(), hm.analyticsHandler.ExportQuizResults)
		}

		// Question bank routes, teacher only
		questions := v1.Group("/questions")
		questions.Use(middleware.RequireTeacher())
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		// Attempt lifecycle routes
		attempts := v1.Group("/attempts")
		{
			attempts.POST("/start", hm.attemptHandler.StartAttempt)
			attempts.GET("", hm.attemptHandler.ListAttempts)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.POST("/:id/answer", hm.attemptHandler.SelectAnswer)
			attempts.POST("/:id/navigate", hm.attemptHandler.Navigate)
			attempts.POST("/:id/flag", hm.attemptHandler.ToggleFlag)
			attempts.POST("/:id/submit", hm.attemptHandler.SubmitAttempt)
			attempts.POST("/:id/abandon", hm.attemptHandler.AbandonAttempt)
			attempts.GET("/:id/result", hm.attemptHandler.GetResult)
		}

		// Discovery routes
		v1.GET("/leaderboard", hm.leaderboardHandler.GetLeaderboard)
		v1.GET("/recommendations", hm.recommendationHandler.GetRecommendations)
	}
}
