package middleware

import (
	"net/http"
	"strings"

	"github.com/brightboard/quiz-service/internal/config"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

// InitAuth configures the Casdoor SDK from service config. Must be called
// once before the middleware handles requests.
func InitAuth(cfg *config.Config) {
	casdoorsdk.InitConfig(
		cfg.CasdoorEndpoint,
		cfg.CasdoorClientID,
		cfg.CasdoorClientSecret,
		cfg.CasdoorCertificate,
		cfg.CasdoorOrganization,
		cfg.CasdoorApplication,
	)
}

// Auth validates the bearer token against Casdoor and stores the caller's
// identity in the request context. The local profile's role is attached too
// when one exists; profile registration itself runs before a profile exists.
func Auth(repo repositories.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header format must be Bearer {token}"})
			return
		}

		claims, err := casdoorsdk.ParseJwtToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		userID := claims.User.Id
		if userID == "" {
			userID = claims.User.Name
		}
		c.Set("user_id", userID)

		if profile, err := repo.User().GetByID(c.Request.Context(), userID); err == nil {
			c.Set("user_role", string(profile.Role))
		}

		c.Next()
	}
}

// RequireTeacher gates authoring and analytics endpoints.
func RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_role") != string(models.RoleTeacher) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "teacher role required"})
			return
		}
		c.Next()
	}
}
