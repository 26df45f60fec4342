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

type QuestionHandler struct {
	BaseHandler
	service *services.QuestionService
}

func NewQuestionHandler(service *services.QuestionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &question, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to create question")
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "question created", created)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	question, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err, "failed to load question")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "question loaded", question)
}

func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	filters := repositories.QuestionFilters{}
	if qtype := c.Query("type"); qtype != "" {
		t := models.QuestionType(qtype)
		filters.Type = &t
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		d := models.Difficulty(difficulty)
		filters.Difficulty = &d
	}
	if topic := c.Query("topic"); topic != "" {
		filters.Topic = &topic
	}
	if c.Query("mine") == "true" {
		userID := CurrentUserID(c)
		filters.CreatedBy = &userID
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}

	questions, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err, "failed to list questions")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "questions listed", gin.H{
		"questions": questions,
		"total":     total,
	})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &question, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to update question")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "question updated", updated)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, CurrentUserID(c)); err != nil {
		h.HandleServiceError(c, err, "failed to delete question")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "question deleted", nil)
}
