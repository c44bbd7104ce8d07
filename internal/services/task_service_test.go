package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/dashboard-api/internal/constants"
	"github.com/yukikurage/dashboard-api/internal/models"
)

type stubGenerator struct {
	tasks []GeneratedTask
	err   error
}

func (g *stubGenerator) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	return g.tasks, g.err
}

func TestTaskService_CreateDefaultsAndValidation(t *testing.T) {
	_, repos := setupServiceTestDB(t)
	tasks := NewTaskService(repos.tasks, nil)

	task, err := tasks.CreateTask(CreateTaskInput{UserID: 1, Title: "  Write report  "})
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)

	_, err = tasks.CreateTask(CreateTaskInput{UserID: 1, Title: " "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = tasks.CreateTask(CreateTaskInput{UserID: 1, Title: "x", Status: "blocked"})
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)

	_, err = tasks.CreateTask(CreateTaskInput{UserID: 1, Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidTaskPriority)
}

func TestTaskService_UpdateAndDeleteAreOwnerScoped(t *testing.T) {
	_, repos := setupServiceTestDB(t)
	tasks := NewTaskService(repos.tasks, nil)

	due := time.Now().Add(48 * time.Hour)
	task, err := tasks.CreateTask(CreateTaskInput{UserID: 1, Title: "Plan", DueDate: &due})
	require.NoError(t, err)

	title := "Other"
	_, err = tasks.UpdateTask(task.ID, 2, UpdateTaskInput{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	status := models.TaskStatusDone
	updated, err := tasks.UpdateTask(task.ID, 1, UpdateTaskInput{Status: &status, ClearDueDate: true})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, updated.Status)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, "Plan", updated.Title)

	empty := " "
	_, err = tasks.UpdateTask(task.ID, 1, UpdateTaskInput{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleEmpty)

	assert.ErrorIs(t, tasks.DeleteTask(task.ID, 2), ErrTaskNotFound)
	require.NoError(t, tasks.DeleteTask(task.ID, 1))
	assert.ErrorIs(t, tasks.DeleteTask(task.ID, 1), ErrTaskNotFound)
}

func TestTaskService_ListFilters(t *testing.T) {
	_, repos := setupServiceTestDB(t)
	tasks := NewTaskService(repos.tasks, nil)

	_, err := tasks.CreateTask(CreateTaskInput{UserID: 1, Title: "A", Priority: models.TaskPriorityHigh})
	require.NoError(t, err)
	_, err = tasks.CreateTask(CreateTaskInput{UserID: 1, Title: "B", Status: models.TaskStatusDone})
	require.NoError(t, err)
	_, err = tasks.CreateTask(CreateTaskInput{UserID: 2, Title: "C"})
	require.NoError(t, err)

	all, err := tasks.ListTasks(ListTasksInput{UserID: 1})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	high := models.TaskPriorityHigh
	filtered, err := tasks.ListTasks(ListTasksInput{UserID: 1, Priority: &high})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "A", filtered[0].Title)

	bad := models.TaskStatus("nope")
	_, err = tasks.ListTasks(ListTasksInput{UserID: 1, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)
}

func TestTaskService_GenerateTasks(t *testing.T) {
	_, repos := setupServiceTestDB(t)
	past := time.Now().Add(-72 * time.Hour)
	future := time.Now().Add(72 * time.Hour)
	generator := &stubGenerator{tasks: []GeneratedTask{
		{Title: "Book flights", Priority: "HIGH", DueDate: &future},
		{Title: "   "},
		{Title: "Pack", Priority: "whenever", DueDate: &past},
	}}
	tasks := NewTaskService(repos.tasks, generator)

	created, err := tasks.GenerateTasks(context.Background(), GenerateTasksInput{Text: "trip next week", UserID: 7})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotZero(t, created[0].ID)
	assert.Equal(t, models.TaskPriorityHigh, created[0].Priority)
	assert.NotNil(t, created[0].DueDate)
	assert.Equal(t, models.TaskPriorityMedium, created[1].Priority)
	assert.Nil(t, created[1].DueDate)

	stored, err := tasks.ListTasks(ListTasksInput{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestTaskService_GenerateTasks_Errors(t *testing.T) {
	_, repos := setupServiceTestDB(t)
	ctx := context.Background()

	_, err := NewTaskService(repos.tasks, nil).GenerateTasks(ctx, GenerateTasksInput{Text: "x", UserID: 1})
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)

	_, err = NewTaskService(repos.tasks, &stubGenerator{}).GenerateTasks(ctx, GenerateTasksInput{Text: "  ", UserID: 1})
	assert.ErrorIs(t, err, ErrTextRequired)

	_, err = NewTaskService(repos.tasks, &stubGenerator{}).GenerateTasks(ctx, GenerateTasksInput{Text: "x", UserID: 1})
	assert.ErrorIs(t, err, ErrAINoTasksGenerated)

	_, err = NewTaskService(repos.tasks, &stubGenerator{tasks: []GeneratedTask{{Title: ""}}}).
		GenerateTasks(ctx, GenerateTasksInput{Text: "x", UserID: 1})
	assert.ErrorIs(t, err, ErrAINoValidTasks)

	many := make([]GeneratedTask, constants.MaxAIGeneratedTasks+1)
	_, err = NewTaskService(repos.tasks, &stubGenerator{tasks: many}).
		GenerateTasks(ctx, GenerateTasksInput{Text: "x", UserID: 1})
	assert.ErrorIs(t, err, ErrAITooManyTasks)

	upstream := errors.New("rate limited")
	_, err = NewTaskService(repos.tasks, &stubGenerator{err: upstream}).
		GenerateTasks(ctx, GenerateTasksInput{Text: "x", UserID: 1})
	assert.ErrorIs(t, err, upstream)
}

func TestParseGeneratedTasks(t *testing.T) {
	content := "```json\n[{\"title\":\"Call Bob\",\"description\":\"\",\"priority\":\"low\",\"dueDate\":null}]\n```"

	tasks, err := parseGeneratedTasks(content)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Call Bob", tasks[0].Title)
	assert.Nil(t, tasks[0].DueDate)

	_, err = parseGeneratedTasks("Sure! Here are your tasks.")
	assert.Error(t, err)
}
