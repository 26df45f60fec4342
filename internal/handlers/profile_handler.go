package handlers

import (
	"log/slog"
	"net/http"

	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	BaseHandler
	service *services.ProfileService
}

func NewProfileHandler(service *services.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

type RegisterProfileRequest struct {
	Name       string          `json:"name" binding:"required"`
	Email      string          `json:"email" binding:"required"`
	Role       models.UserRole `json:"role" binding:"required"`
	GradeLevel string          `json:"grade_level"`
	Subjects   []string        `json:"subjects"`
}

// RegisterProfile creates the local profile for the authenticated identity.
func (h *ProfileHandler) RegisterProfile(c *gin.Context) {
	var req RegisterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	profile := &models.UserProfile{
		ID:         CurrentUserID(c),
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		GradeLevel: req.GradeLevel,
		Subjects:   req.Subjects,
		Level:      1,
	}
	created, err := h.service.Register(c.Request.Context(), profile)
	if err != nil {
		h.HandleServiceError(c, err, "failed to register profile")
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "profile registered", created)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetByID(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to load profile")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "profile loaded", profile)
}

type UpdateProfileRequest struct {
	Name       string   `json:"name"`
	GradeLevel string   `json:"grade_level"`
	Subjects   []string `json:"subjects"`
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	profile, err := h.service.Update(c.Request.Context(), CurrentUserID(c), req.Name, req.GradeLevel, req.Subjects)
	if err != nil {
		h.HandleServiceError(c, err, "failed to update profile")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "profile updated", profile)
}

// GetBadgeCatalog lists every badge the service can award.
func (h *ProfileHandler) GetBadgeCatalog(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "badge catalog", h.service.BadgeCatalog())
}

func (h *ProfileHandler) GetProgress(c *gin.Context) {
	progress, err := h.service.Progress(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err, "failed to load progress")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "progress loaded", progress)
}
