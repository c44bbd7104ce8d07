package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/dashboard-api/internal/constants"
	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"github.com/yukikurage/dashboard-api/internal/utils"
	"gorm.io/gorm"
)

var ErrFullNameEmpty = errors.New("full name cannot be empty")

// UserService handles profile updates and the user directory.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// UpdateProfileInput carries the optional profile fields; nil means unchanged.
type UpdateProfileInput struct {
	FullName  *string
	AvatarURL *string
}

// UpdateProfile applies the provided fields to the user.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, ErrFullNameEmpty
		}
		user.FullName = name
	}
	if input.AvatarURL != nil {
		avatar := strings.TrimSpace(*input.AvatarURL)
		if avatar == "" {
			user.AvatarURL = nil
		} else {
			user.AvatarURL = &avatar
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// SearchInput describes one directory search request.
type SearchInput struct {
	RequesterID uint64
	Query       string
	Page        int
	Limit       int
}

// SearchResult is one page of directory matches.
type SearchResult struct {
	Users []models.User
	Total int64
	Page  int
	Pages int
}

// Search finds users whose email or full name contains the query, case-insensitively.
// The requester and everyone already on the requester's team are left out. Queries
// shorter than two characters return an empty result without querying the directory.
func (s *UserService) Search(input SearchInput) (*SearchResult, error) {
	params := utils.NewPaginationParams(input.Page, input.Limit)

	query := strings.TrimSpace(input.Query)
	if len([]rune(query)) < constants.MinSearchQueryLength {
		return &SearchResult{Users: []models.User{}, Total: 0, Page: params.Page, Pages: 0}, nil
	}

	users, total, err := s.userRepo.Search(repository.UserSearchFilter{
		Query:       query,
		RequesterID: input.RequesterID,
		Pagination:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return &SearchResult{
		Users: users,
		Total: total,
		Page:  params.Page,
		Pages: utils.TotalPages(total, params.Limit),
	}, nil
}

// ListUsers returns a page of every registered user.
func (s *UserService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
