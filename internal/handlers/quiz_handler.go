package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/brightboard/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	service  *services.QuizService
	question *services.QuestionService
}

func NewQuizHandler(service *services.QuizService, question *services.QuestionService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		question:    question,
	}
}

// CreateQuizRequest carries authored quiz content. Questions can be given
// inline, referenced from the bank by id, or both.
type CreateQuizRequest struct {
	Title           string                `json:"title" binding:"required"`
	Description     string                `json:"description"`
	Subject         string                `json:"subject" binding:"required"`
	GradeLevel      string                `json:"grade_level"`
	Difficulty      models.Difficulty     `json:"difficulty" binding:"required"`
	EstimatedTime   int                   `json:"estimated_time" binding:"required"`
	Questions       []models.QuizQuestion `json:"questions"`
	BankQuestionIDs []uint                `json:"bank_question_ids"`
	Tags            []string              `json:"tags"`
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	questions := req.Questions
	if len(req.BankQuestionIDs) > 0 {
		snapshots, err := h.question.Snapshots(c.Request.Context(), req.BankQuestionIDs)
		if err != nil {
			h.HandleServiceError(c, err, "failed to resolve bank questions")
			return
		}
		questions = append(questions, snapshots...)
	}

	quiz := &models.Quiz{
		Title:         req.Title,
		Description:   req.Description,
		Subject:       req.Subject,
		GradeLevel:    req.GradeLevel,
		Difficulty:    req.Difficulty,
		EstimatedTime: req.EstimatedTime,
		Questions:     questions,
		Tags:          req.Tags,
		IsActive:      true,
	}

	created, err := h.service.Create(c.Request.Context(), quiz, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to create quiz")
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "quiz created", created)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	// Teachers see the full quiz; students get the sanitized form without
	// answer keys.
	var quiz *models.Quiz
	var err error
	if CurrentUserRole(c) == string(models.RoleTeacher) {
		quiz, err = h.service.GetByID(c.Request.Context(), id)
	} else {
		quiz, err = h.service.GetForTaking(c.Request.Context(), id)
	}
	if err != nil {
		h.HandleServiceError(c, err, "failed to load quiz")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "quiz loaded", quiz)
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	filters := repositories.QuizFilters{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if subject := c.Query("subject"); subject != "" {
		filters.Subject = &subject
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		d := models.Difficulty(difficulty)
		filters.Difficulty = &d
	}
	if gradeLevel := c.Query("grade_level"); gradeLevel != "" {
		filters.GradeLevel = &gradeLevel
	}
	if c.Query("mine") == "true" {
		userID := CurrentUserID(c)
		filters.CreatedBy = &userID
	} else {
		active := true
		filters.IsActive = &active
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}

	quizzes, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err, "failed to list quizzes")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "quizzes listed", gin.H{
		"quizzes": quizzes,
		"total":   total,
	})
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	questions := req.Questions
	if len(req.BankQuestionIDs) > 0 {
		snapshots, err := h.question.Snapshots(c.Request.Context(), req.BankQuestionIDs)
		if err != nil {
			h.HandleServiceError(c, err, "failed to resolve bank questions")
			return
		}
		questions = append(questions, snapshots...)
	}

	quiz := &models.Quiz{
		Title:         req.Title,
		Description:   req.Description,
		Subject:       req.Subject,
		GradeLevel:    req.GradeLevel,
		Difficulty:    req.Difficulty,
		EstimatedTime: req.EstimatedTime,
		Questions:     questions,
		Tags:          req.Tags,
		IsActive:      true,
	}

	updated, err := h.service.Update(c.Request.Context(), id, quiz, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to update quiz")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "quiz updated", updated)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, CurrentUserID(c)); err != nil {
		h.HandleServiceError(c, err, "failed to delete quiz")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "quiz deleted", nil)
}
