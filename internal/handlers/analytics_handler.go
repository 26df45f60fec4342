package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/brightboard/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	BaseHandler
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *AnalyticsHandler) GetQuizStats(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	stats, err := h.service.QuizStats(c.Request.Context(), id, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to compute quiz stats")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "quiz stats computed", stats)
}

func (h *AnalyticsHandler) ExportQuizResults(c *gin.Context) {
	id, ok := ParseUintParam(c, "id")
	if !ok {
		return
	}
	data, err := h.service.ExportQuizResults(c.Request.Context(), id, CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to export results")
		return
	}

	filename := fmt.Sprintf("quiz_%d_results.xlsx", id)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
