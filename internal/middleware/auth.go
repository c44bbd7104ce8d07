package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/dashboard-api/internal/constants"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/logger"
	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"github.com/yukikurage/dashboard-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequireAuth resolves the bearer token to an existing user. A missing header, a bad
// token and a token for a user that no longer exists are all rejected with 401.
func RequireAuth(tokens *services.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "Not authorized, no token")
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Not authorized, token failed")
			return
		}

		user, err := users.FindByID(userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.FromContext(c).Warn("Failed to load token user", zap.Uint64("user_id", userID), zap.Error(err))
			}
			apierrors.Unauthorized(c, "Not authorized, user not found")
			return
		}

		// Store the user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyCurrentUser, user)
		logger.WithContext(c, logger.FromContext(c).With(zap.Uint64("user_id", user.ID)))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) < len(constants.BearerPrefix) ||
		!strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(constants.BearerPrefix):])
	return token, token != ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetCurrentUser retrieves the user resolved by RequireAuth
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
