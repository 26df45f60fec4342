package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brightboard/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER =====

// BaseHandler provides response and error-mapping helpers shared by all
// handlers.
type BaseHandler struct {
	logger *slog.Logger
}

func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Details = err.Error()
		h.logger.Warn(message,
			"status_code", statusCode,
			"path", c.Request.URL.Path,
			"error", err)
	}
	c.JSON(statusCode, resp)
}

// HandleServiceError maps service-layer errors onto HTTP status codes.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error, message string) {
	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, message, err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, message, err)
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusForbidden, message, err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, message, err)
	case services.IsRetryable(err):
		// Session state survives; the client may retry the same call.
		h.RespondWithError(c, http.StatusServiceUnavailable, message, err)
	default:
		h.logger.Error(message, "path", c.Request.URL.Path, "error", err)
		h.RespondWithError(c, http.StatusInternalServerError, message, nil)
	}
}

// ===== REQUEST HELPERS =====

// ParseUintParam parses a numeric path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(value), true
}

// CurrentUserID reads the authenticated user id the auth middleware stored.
func CurrentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// CurrentUserRole reads the authenticated role the auth middleware stored.
func CurrentUserRole(c *gin.Context) string {
	return c.GetString("user_role")
}
