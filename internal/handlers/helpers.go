package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/middleware"
)

// requireUserID returns the authenticated user ID or writes a 401.
func requireUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// parseIDParam reads a numeric path parameter. A malformed id can never match a
// record, so it is reported as notFoundMessage.
func parseIDParam(c *gin.Context, name, notFoundMessage string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.NotFound(c, notFoundMessage)
		return 0, false
	}
	return id, true
}
