package repository

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.BootstrapClaim{},
		&models.TeamMember{},
		&models.Task{},
		&models.Event{},
	))

	return db
}

func createRepositoryTestUser(t *testing.T, db *gorm.DB, email, fullName string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: "hashed",
		Role:         models.RoleMember,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserRepository_CreateWithRole_FirstUserIsAdmin(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	first := &models.User{Email: "first@example.com", FullName: "First", PasswordHash: "x"}
	require.NoError(t, repo.CreateWithRole(first))
	require.Equal(t, models.RoleAdmin, first.Role)

	second := &models.User{Email: "second@example.com", FullName: "Second", PasswordHash: "x"}
	require.NoError(t, repo.CreateWithRole(second))
	require.Equal(t, models.RoleMember, second.Role)

	stored, err := repo.FindByID(first.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, stored.Role)
}

func TestUserRepository_CreateWithRole_DuplicateEmail(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.CreateWithRole(&models.User{Email: "a@example.com", FullName: "A", PasswordHash: "x"}))
	err := repo.CreateWithRole(&models.User{Email: "a@example.com", FullName: "A2", PasswordHash: "x"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_CreateWithRole_ConcurrentSingleAdmin(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateWithRole(&models.User{
				Email:        fmt.Sprintf("user%d@example.com", i),
				FullName:     fmt.Sprintf("User %d", i),
				PasswordHash: "x",
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var admins int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error)
	require.Equal(t, int64(1), admins)
}

func TestUserRepository_Search(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)
	teamRepo := NewTeamMemberRepository(db)

	requester := createRepositoryTestUser(t, db, "alice@example.com", "Alice Admin")
	bob := createRepositoryTestUser(t, db, "bob@example.com", "Bob Builder")
	carol := createRepositoryTestUser(t, db, "carol@example.com", "Carol BOBBINS")
	createRepositoryTestUser(t, db, "dave@other.org", "Dave")

	require.NoError(t, teamRepo.Create(&models.TeamMember{UserID: bob.ID, AddedBy: requester.ID}))

	users, total, err := repo.Search(UserSearchFilter{
		Query:       "BOB",
		RequesterID: requester.ID,
		Pagination:  utils.NewPaginationParams(1, 10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	require.Equal(t, carol.ID, users[0].ID)

	// The requester matches "example" but is never returned.
	users, total, err = repo.Search(UserSearchFilter{
		Query:       "example",
		RequesterID: requester.ID,
		Pagination:  utils.NewPaginationParams(1, 10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	for _, u := range users {
		require.NotEqual(t, requester.ID, u.ID)
		require.NotEqual(t, bob.ID, u.ID)
	}
}

func TestUserRepository_Search_WildcardsAreLiteral(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	requester := createRepositoryTestUser(t, db, "req@example.com", "Requester")
	createRepositoryTestUser(t, db, "plain@example.com", "Plain")
	percent := createRepositoryTestUser(t, db, "hundred%@example.com", "Percent")

	users, total, err := repo.Search(UserSearchFilter{
		Query:       "%@",
		RequesterID: requester.ID,
		Pagination:  utils.NewPaginationParams(1, 10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, percent.ID, users[0].ID)
}

func TestUserRepository_Search_Pagination(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	requester := createRepositoryTestUser(t, db, "req@example.com", "Requester")
	for i := 0; i < 5; i++ {
		createRepositoryTestUser(t, db, fmt.Sprintf("member%d@corp.io", i), fmt.Sprintf("Member %d", i))
	}

	users, total, err := repo.Search(UserSearchFilter{
		Query:       "corp.io",
		RequesterID: requester.ID,
		Pagination:  utils.NewPaginationParams(2, 2),
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, users, 2)
}

func TestTeamMemberRepository_UniquePerOwner(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewTeamMemberRepository(db)

	owner1 := createRepositoryTestUser(t, db, "o1@example.com", "Owner One")
	owner2 := createRepositoryTestUser(t, db, "o2@example.com", "Owner Two")
	subject := createRepositoryTestUser(t, db, "s@example.com", "Subject")

	require.NoError(t, repo.Create(&models.TeamMember{UserID: subject.ID, AddedBy: owner1.ID}))
	require.ErrorIs(t, repo.Create(&models.TeamMember{UserID: subject.ID, AddedBy: owner1.ID}), ErrDuplicateTeamMember)
	require.NoError(t, repo.Create(&models.TeamMember{UserID: subject.ID, AddedBy: owner2.ID}))

	count, err := repo.CountByOwner(owner1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	total, err := repo.CountAll()
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}

func TestTeamMemberRepository_ConcurrentDuplicateAdds(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewTeamMemberRepository(db)

	owner := createRepositoryTestUser(t, db, "o@example.com", "Owner")
	subject := createRepositoryTestUser(t, db, "s@example.com", "Subject")

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(&models.TeamMember{UserID: subject.ID, AddedBy: owner.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrDuplicateTeamMember)
	}
	require.Equal(t, 1, succeeded)
}

func TestTeamMemberRepository_ListByOwner(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewTeamMemberRepository(db)

	owner := createRepositoryTestUser(t, db, "o@example.com", "Owner")
	first := createRepositoryTestUser(t, db, "first@example.com", "First")
	second := createRepositoryTestUser(t, db, "second@example.com", "Second")

	require.NoError(t, repo.Create(&models.TeamMember{UserID: first.ID, AddedBy: owner.ID}))
	require.NoError(t, repo.Create(&models.TeamMember{UserID: second.ID, AddedBy: owner.ID}))

	members, err := repo.ListByOwner(owner.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, second.ID, members[0].UserID)
	require.Equal(t, "second@example.com", members[0].User.Email)
	require.Equal(t, first.ID, members[1].UserID)
}

func TestTeamMemberRepository_DeleteByOwner(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewTeamMemberRepository(db)

	owner := createRepositoryTestUser(t, db, "o@example.com", "Owner")
	subject := createRepositoryTestUser(t, db, "s@example.com", "Subject")

	member := &models.TeamMember{UserID: subject.ID, AddedBy: owner.ID}
	require.NoError(t, repo.Create(member))

	// The subject of a membership cannot delete it.
	require.ErrorIs(t, repo.DeleteByOwner(member.ID, subject.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteByOwner(member.ID, owner.ID))
	require.ErrorIs(t, repo.DeleteByOwner(member.ID, owner.ID), gorm.ErrRecordNotFound)
}

func TestTaskRepository_ListAndDelete(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewTaskRepository(db)

	owner := createRepositoryTestUser(t, db, "o@example.com", "Owner")
	other := createRepositoryTestUser(t, db, "x@example.com", "Other")

	require.NoError(t, repo.CreateBatch([]models.Task{
		{UserID: owner.ID, Title: "one", Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow},
		{UserID: owner.ID, Title: "two", Status: models.TaskStatusDone, Priority: models.TaskPriorityHigh},
		{UserID: other.ID, Title: "foreign", Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow},
	}))

	tasks, err := repo.List(TaskFilter{UserID: owner.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	done := models.TaskStatusDone
	tasks, err = repo.List(TaskFilter{UserID: owner.ID, Status: &done})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "two", tasks[0].Title)

	require.ErrorIs(t, repo.DeleteForUser(tasks[0].ID, other.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteForUser(tasks[0].ID, owner.ID))

	_, err = repo.FindByIDForUser(tasks[0].ID, owner.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Search_FoldsNonASCII(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	requester := createRepositoryTestUser(t, db, "req@example.com", "Requester")
	unal := createRepositoryTestUser(t, db, "unal@example.com", "Ünal Özdemir")

	for _, q := range []string{"ünal", "Ünal", "ÜNAL", "özdemir"} {
		users, total, err := repo.Search(UserSearchFilter{
			Query:       q,
			RequesterID: requester.ID,
			Pagination:  utils.NewPaginationParams(1, 10),
		})
		require.NoError(t, err, q)
		require.Equal(t, int64(1), total, q)
		require.Equal(t, unal.ID, users[0].ID, q)
	}

	// Renaming keeps the search column in step.
	unal.FullName = "Şule Çelik"
	require.NoError(t, repo.Update(unal))
	_, total, err := repo.Search(UserSearchFilter{
		Query:       "şule",
		RequesterID: requester.ID,
		Pagination:  utils.NewPaginationParams(1, 10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
