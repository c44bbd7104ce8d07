package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/services"
)

// TeamHandler serves the caller's own team membership list.
type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// ListMembers returns the memberships the caller created, newest first.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	ownerID, ok := requireUserID(c)
	if !ok {
		return
	}

	members, err := h.teamService.ListMembers(ownerID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTOs(members))
}

// AddMember adds the user in the body to the caller's team.
func (h *TeamHandler) AddMember(c *gin.Context) {
	ownerID, ok := requireUserID(c)
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.UserID == 0 {
		apierrors.BadRequest(c, "User ID is required")
		return
	}

	member, err := h.teamService.AddMember(ownerID, req.UserID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamMemberDTO(*member))
}

// RemoveMember deletes one of the caller's memberships.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	ownerID, ok := requireUserID(c)
	if !ok {
		return
	}
	membershipID, ok := parseIDParam(c, "id", services.ErrTeamMemberNotFound.Error())
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(ownerID, membershipID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member removed successfully"})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTeamMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error", err)
	}
}
