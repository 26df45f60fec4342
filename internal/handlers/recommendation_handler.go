package handlers

import (
	"log/slog"
	"net/http"

	"github.com/brightboard/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	BaseHandler
	service *services.RecommendationService
}

func NewRecommendationHandler(service *services.RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	recs, err := h.service.ForUser(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to compute recommendations")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "recommendations computed", recs)
}
