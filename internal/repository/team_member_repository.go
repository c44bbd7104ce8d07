package repository

import (
	"errors"

	"github.com/yukikurage/dashboard-api/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateTeamMember is returned when the (user_id, added_by) unique index rejects an insert.
var ErrDuplicateTeamMember = errors.New("team member repository: membership already exists")

// GormTeamMemberRepository is a GORM implementation of TeamMemberRepository
type GormTeamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new TeamMemberRepository
func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &GormTeamMemberRepository{db: db}
}

// Create inserts the membership. Uniqueness is left to the database index so concurrent
// duplicate adds cannot both succeed.
func (r *GormTeamMemberRepository) Create(member *models.TeamMember) error {
	if err := r.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTeamMember
		}
		return err
	}
	return nil
}

// FindByID finds a membership by ID
func (r *GormTeamMemberRepository) FindByID(id uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Preload("User").First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListByOwner lists memberships added by ownerID with the subject user joined in
func (r *GormTeamMemberRepository) ListByOwner(ownerID uint64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Preload("User").
		Where("added_by = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// DeleteByOwner removes a membership. A membership owned by someone else is reported
// exactly like a missing one.
func (r *GormTeamMemberRepository) DeleteByOwner(id, ownerID uint64) error {
	result := r.db.Where("id = ? AND added_by = ?", id, ownerID).Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByOwner counts memberships added by ownerID
func (r *GormTeamMemberRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).Where("added_by = ?", ownerID).Count(&count).Error
	return count, err
}

// CountAll counts every membership in the system
func (r *GormTeamMemberRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).Count(&count).Error
	return count, err
}
