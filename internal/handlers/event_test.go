package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/dashboard-api/internal/constants"
	"github.com/yukikurage/dashboard-api/internal/dto"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"github.com/yukikurage/dashboard-api/internal/services"
)

func TestEventHandler_Lifecycle(t *testing.T) {
	db := openHandlerTestDB(t)
	users := repository.NewUserRepository(db)
	handler := NewEventHandler(services.NewEventService(repository.NewEventRepository(db)))
	alice := registerHandlerTestUser(t, users, "alice@example.com", "Alice")
	bob := registerHandlerTestUser(t, users, "bob@example.com", "Bob")

	c, w := createAuthContext(http.MethodPost, "/api/events", map[string]string{"title": "No date"}, alice)
	handler.CreateEvent(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = createAuthContext(http.MethodPost, "/api/events", map[string]string{
		"title": "Review",
		"date":  "2025-11-03T15:00:00Z",
	}, alice)
	handler.CreateEvent(c)
	require.Equal(t, http.StatusCreated, w.Code)
	var event dto.EventDTO
	decodeJSON(t, w, &event)
	assert.Equal(t, constants.DefaultEventColor, event.Color)

	c, w = createAuthContext(http.MethodPut, "/api/events/1", map[string]string{"title": "Moved"}, bob)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(event.ID)}}
	handler.UpdateEvent(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = createAuthContext(http.MethodGet, "/api/events", nil, alice)
	handler.ListEvents(c)
	require.Equal(t, http.StatusOK, w.Code)
	var events []dto.EventDTO
	decodeJSON(t, w, &events)
	assert.Len(t, events, 1)

	c, w = createAuthContext(http.MethodDelete, "/api/events/1", nil, alice)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(event.ID)}}
	handler.DeleteEvent(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardHandler_GetStats(t *testing.T) {
	db := openHandlerTestDB(t)
	users := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	handler := NewDashboardHandler(services.NewDashboardService(
		taskRepo, repository.NewEventRepository(db), repository.NewTeamMemberRepository(db)))
	alice := registerHandlerTestUser(t, users, "alice@example.com", "Alice")

	_, err := services.NewTaskService(taskRepo, nil).CreateTask(services.CreateTaskInput{UserID: alice.ID, Title: "One"})
	require.NoError(t, err)

	c, w := createAuthContext(http.MethodGet, "/api/dashboard/stats", nil, alice)
	handler.GetStats(c)
	require.Equal(t, http.StatusOK, w.Code)

	var stats services.DashboardStats
	decodeJSON(t, w, &stats)
	assert.Equal(t, 1, stats.TotalTasks)
	assert.Equal(t, 1, stats.TodoTasks)
	assert.Len(t, stats.WeeklyData, 7)
	assert.Len(t, stats.ProgressData, 3)
}
