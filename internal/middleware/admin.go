package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/services"
)

// RequireAdmin applies the admin escalation policy. It must run after RequireAuth.
func RequireAdmin(teamService *services.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		allowed, err := teamService.AdminAccess(user)
		if err != nil {
			apierrors.InternalError(c, "Failed to check admin access", err)
			return
		}
		if !allowed {
			apierrors.Forbidden(c, "Not authorized as an admin")
			return
		}

		c.Next()
	}
}
