package dto

import (
	"time"

	"github.com/yukikurage/dashboard-api/internal/models"
)

// TeamMemberDTO is a membership flattened with its subject user's public profile
type TeamMemberDTO struct {
	ID        uint64          `json:"id"`
	UserID    uint64          `json:"user_id"`
	AddedBy   uint64          `json:"added_by"`
	CreatedAt time.Time       `json:"created_at"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	AvatarURL *string         `json:"avatar_url"`
	Role      models.UserRole `json:"role"`
}

// ToTeamMemberDTO converts a membership with its User loaded. A subject that no longer
// exists yields empty profile fields.
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		ID:        member.ID,
		UserID:    member.UserID,
		AddedBy:   member.AddedBy,
		CreatedAt: member.CreatedAt,
		Email:     member.User.Email,
		FullName:  member.User.FullName,
		AvatarURL: member.User.AvatarURL,
		Role:      member.User.Role,
	}
}

func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, 0, len(members))
	for _, member := range members {
		dtos = append(dtos, ToTeamMemberDTO(member))
	}
	return dtos
}
