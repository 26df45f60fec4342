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

type AttemptHandler struct {
	BaseHandler
	service *services.AttemptService
}

func NewAttemptHandler(service *services.AttemptService, logger *slog.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

type StartAttemptRequest struct {
	QuizID uint `json:"quiz_id" binding:"required"`
}

func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	var req StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	snap, err := h.service.Start(c.Request.Context(), CurrentUserID(c), req.QuizID)
	if err != nil {
		h.HandleServiceError(c, err, "failed to start attempt")
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "attempt started", snap)
}

func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	snap, err := h.service.Snapshot(id, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to load attempt")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "attempt loaded", snap)
}

type SelectAnswerRequest struct {
	QuestionIndex int `json:"question_index"`
	OptionIndex   int `json:"option_index"`
}

func (h *AttemptHandler) SelectAnswer(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	snap, err := h.service.SelectAnswer(id, CurrentUserID(c), req.QuestionIndex, req.OptionIndex)
	if err != nil {
		h.HandleServiceError(c, err, "failed to record answer")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "answer recorded", snap)
}

type NavigateRequest struct {
	QuestionIndex int `json:"question_index"`
}

func (h *AttemptHandler) Navigate(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	snap, err := h.service.Navigate(id, CurrentUserID(c), req.QuestionIndex)
	if err != nil {
		h.HandleServiceError(c, err, "failed to navigate")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "navigated", snap)
}

func (h *AttemptHandler) ToggleFlag(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	snap, err := h.service.ToggleFlag(id, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to toggle flag")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "flag toggled", snap)
}

func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	outcome, err := h.service.Submit(c.Request.Context(), id, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to submit attempt")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "attempt submitted", outcome)
}

func (h *AttemptHandler) AbandonAttempt(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Abandon(id, CurrentUserID(c)); err != nil {
		h.HandleServiceError(c, err, "failed to abandon attempt")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "attempt abandoned", nil)
}

func (h *AttemptHandler) GetResult(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	result, err := h.service.GetResult(c.Request.Context(), id, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to load result")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "result loaded", result)
}

func (h *AttemptHandler) ListResults(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	results, err := h.service.RecentResults(c.Request.Context(), CurrentUserID(c), limit)
	if err != nil {
		h.HandleServiceError(c, err, "failed to list results")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "results listed", results)
}

func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	filters := repositories.AttemptFilters{}
	if status := c.Query("status"); status != "" {
		s := models.AttemptStatus(status)
		filters.Status = &s
	}
	if quizID, err := strconv.ParseUint(c.Query("quiz_id"), 10, 32); err == nil {
		id := uint(quizID)
		filters.QuizID = &id
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}

	attempts, total, err := h.service.History(c.Request.Context(), CurrentUserID(c), filters)
	if err != nil {
		h.HandleServiceError(c, err, "failed to list attempts")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "attempts listed", gin.H{
		"attempts": attempts,
		"total":    total,
	})
}
