package repository

import (
	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithRole creates a user. The very first user ever stored is promoted to
	// admin; every other user is created as a member. user.Role is set accordingly.
	CreateWithRole(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by their normalized email
	FindByEmail(email string) (*models.User, error)

	// Update saves changes to an existing user
	Update(user *models.User) error

	// Search matches users by email or full name, excluding the requester and the
	// requester's team
	Search(filter UserSearchFilter) ([]models.User, int64, error)

	// List returns all users, paginated
	List(params utils.PaginationParams) ([]models.User, int64, error)
}

// UserSearchFilter holds the directory search options
type UserSearchFilter struct {
	Query       string
	RequesterID uint64
	Pagination  utils.PaginationParams
}

// TeamMemberRepository defines the interface for team membership data access
type TeamMemberRepository interface {
	// Create stores a membership; a repeated (user, owner) pair fails with ErrDuplicateTeamMember
	Create(member *models.TeamMember) error

	// FindByID finds a membership with its subject user loaded
	FindByID(id uint64) (*models.TeamMember, error)

	// ListByOwner lists the memberships created by ownerID, newest first
	ListByOwner(ownerID uint64) ([]models.TeamMember, error)

	// DeleteByOwner deletes a membership only when ownerID created it
	DeleteByOwner(id, ownerID uint64) error

	// CountByOwner counts the memberships created by ownerID
	CountByOwner(ownerID uint64) (int64, error)

	// CountAll counts every membership in the system
	CountAll() (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// CreateBatch creates several tasks in one transaction
	CreateBatch(tasks []models.Task) error

	// FindByIDForUser finds a task owned by userID
	FindByIDForUser(id, userID uint64) (*models.Task, error)

	// List retrieves a user's tasks, newest first
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// DeleteForUser soft deletes a task owned by userID
	DeleteForUser(id, userID uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID   uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
}

// EventRepository defines the interface for calendar event data access
type EventRepository interface {
	// Create creates a new event
	Create(event *models.Event) error

	// FindByIDForUser finds an event owned by userID
	FindByIDForUser(id, userID uint64) (*models.Event, error)

	// ListByUser lists a user's events ordered by date
	ListByUser(userID uint64) ([]models.Event, error)

	// Update updates an event
	Update(event *models.Event) error

	// DeleteForUser soft deletes an event owned by userID
	DeleteForUser(id, userID uint64) error
}
