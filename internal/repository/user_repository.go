package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/dashboard-api/internal/database"
	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrDuplicateEmail is returned when the unique email index rejects an insert.
	ErrDuplicateEmail = errors.New("user repository: email already exists")
	// ErrCreateUser is returned when creating a user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithRole creates the user and settles their role in the same transaction.
//
// Users stored before this one are counted (including soft deleted ones). When there are
// none, the user competes for the admin bootstrap claim; the claim's primary key makes
// sure only one concurrent registration can win it.
func (r *GormUserRepository) CreateWithRole(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Unscoped().Model(&models.User{}).Count(&existing).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		user.Role = models.RoleMember
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		if existing > 0 {
			return nil
		}

		claim := &models.BootstrapClaim{Name: models.AdminBootstrapClaim, UserID: user.ID}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(claim)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}
		user.Role = models.RoleAdmin
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Search returns one page of matching users and the total match count
func (r *GormUserRepository) Search(filter UserSearchFilter) ([]models.User, int64, error) {
	var total int64
	if err := r.searchQuery(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.searchQuery(filter).
		Order("users.id ASC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// searchQuery matches against columns that are already lowercase: emails are normalized
// on registration and full_name_lower is maintained by User.BeforeSave.
func (r *GormUserRepository) searchQuery(filter UserSearchFilter) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(filter.Query)) + "%"

	teamSubQuery := r.db.Model(&models.TeamMember{}).
		Select("user_id").
		Where("added_by = ?", filter.RequesterID)

	return r.db.Model(&models.User{}).
		Where("users.id <> ?", filter.RequesterID).
		Where("users.id NOT IN (?)", teamSubQuery).
		Where("(users.email LIKE ? ESCAPE '!' OR users.full_name_lower LIKE ? ESCAPE '!')", pattern, pattern)
}

// List returns a page of all users
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.db.Order("id ASC").
		Scopes(database.Paginate(params)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes user input match literally inside a LIKE pattern using '!' as escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
