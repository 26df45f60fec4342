package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brightboard/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	BaseHandler
	service *services.LeaderboardService
}

func NewLeaderboardHandler(service *services.LeaderboardService, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.service.Top(c.Request.Context(), limit)
	if err != nil {
		h.HandleServiceError(c, err, "failed to load leaderboard")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "leaderboard loaded", entries)
}
