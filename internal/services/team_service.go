package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAlreadyTeamMember  = errors.New("this user is already in your team")
	ErrTeamMemberNotFound = errors.New("team member not found or you do not have permission")
)

// TeamService manages owner scoped team memberships.
type TeamService struct {
	teamRepo repository.TeamMemberRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamMemberRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// ListMembers returns the memberships ownerID created, newest first, with the subject
// user's profile loaded.
func (s *TeamService) ListMembers(ownerID uint64) ([]models.TeamMember, error) {
	members, err := s.teamRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// AddMember puts subjectID on ownerID's team.
func (s *TeamService) AddMember(ownerID, subjectID uint64) (*models.TeamMember, error) {
	subject, err := s.userRepo.FindByID(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	member := &models.TeamMember{
		UserID:  subject.ID,
		AddedBy: ownerID,
	}
	if err := s.teamRepo.Create(member); err != nil {
		if errors.Is(err, repository.ErrDuplicateTeamMember) {
			return nil, ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	member.User = *subject
	return member, nil
}

// RemoveMember deletes a membership created by ownerID. Memberships created by anyone
// else are reported as not found.
func (s *TeamService) RemoveMember(ownerID, membershipID uint64) error {
	if err := s.teamRepo.DeleteByOwner(membershipID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return nil
}

// CountMembers counts the memberships ownerID created.
func (s *TeamService) CountMembers(ownerID uint64) (int64, error) {
	count, err := s.teamRepo.CountByOwner(ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to count team members: %w", err)
	}
	return count, nil
}

// AdminAccess reports whether user passes the admin escalation check right now.
func (s *TeamService) AdminAccess(user *models.User) (bool, error) {
	total, err := s.teamRepo.CountAll()
	if err != nil {
		return false, fmt.Errorf("failed to count team members: %w", err)
	}
	return AdminAccessAllowed(user, total), nil
}
