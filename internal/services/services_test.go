package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/dashboard-api/internal/database"
	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testRepos struct {
	users  repository.UserRepository
	team   repository.TeamMemberRepository
	tasks  repository.TaskRepository
	events repository.EventRepository
}

func setupServiceTestDB(t *testing.T) (*gorm.DB, testRepos) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zaptest.NewLogger(t)))

	return db, testRepos{
		users:  repository.NewUserRepository(db),
		team:   repository.NewTeamMemberRepository(db),
		tasks:  repository.NewTaskRepository(db),
		events: repository.NewEventRepository(db),
	}
}

func registerServiceTestUser(t *testing.T, auth *AuthService, email, fullName string) *models.User {
	t.Helper()
	user, err := auth.Register(RegisterInput{Email: email, Password: "password123", FullName: fullName})
	require.NoError(t, err)
	return user
}
