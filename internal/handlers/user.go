package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/middleware"
	"github.com/yukikurage/dashboard-api/internal/services"
	"github.com/yukikurage/dashboard-api/internal/utils"
)

// UserHandler serves the current user's profile and the user directory.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the authenticated user.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateMe updates the authenticated user's name and avatar.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type UpdateProfileRequest struct {
		FullName  *string `json:"fullName"`
		AvatarURL *string `json:"avatarUrl"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Search looks users up by email or name, leaving out the caller and the caller's team.
func (h *UserHandler) Search(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.userService.Search(services.SearchInput{
		RequesterID: userID,
		Query:       c.Query("q"),
		Page:        params.Page,
		Limit:       params.Limit,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserSearchResponse{
		Users: dto.ToUserDTOs(result.Users),
		Total: result.Total,
		Page:  result.Page,
		Pages: result.Pages,
	})
}

// ListUsers returns every registered user. Mounted behind RequireAdmin.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Users:      dto.ToUserDTOs(users),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
		TotalPages: utils.TotalPages(total, params.Limit),
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFullNameEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error", err)
	}
}
