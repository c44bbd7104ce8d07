package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/repository"
)

type DayActivity struct {
	Name   string `json:"name"`
	Tasks  int    `json:"tasks"`
	Events int    `json:"events"`
}

type ProgressSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// DashboardStats summarizes one user's tasks, events and team.
type DashboardStats struct {
	TotalTasks      int             `json:"totalTasks"`
	CompletedTasks  int             `json:"completedTasks"`
	InProgressTasks int             `json:"inProgressTasks"`
	TodoTasks       int             `json:"todoTasks"`
	UpcomingEvents  int             `json:"upcomingEvents"`
	TeamCount       int64           `json:"teamCount"`
	WeeklyData      []DayActivity   `json:"weeklyData"`
	ProgressData    []ProgressSlice `json:"progressData"`
}

type DashboardService struct {
	taskRepo  repository.TaskRepository
	eventRepo repository.EventRepository
	teamRepo  repository.TeamMemberRepository
	now       func() time.Time
}

func NewDashboardService(taskRepo repository.TaskRepository, eventRepo repository.EventRepository, teamRepo repository.TeamMemberRepository) *DashboardService {
	return &DashboardService{
		taskRepo:  taskRepo,
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
		now:       time.Now,
	}
}

func (s *DashboardService) Stats(userID uint64) (*DashboardStats, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	events, err := s.eventRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	teamCount, err := s.teamRepo.CountByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count team members: %w", err)
	}

	stats := BuildDashboardStats(tasks, events, teamCount, s.now())
	return &stats, nil
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// BuildDashboardStats computes the dashboard for the week (Sunday to Saturday) that
// contains now. Days are compared in now's location.
func BuildDashboardStats(tasks []models.Task, events []models.Event, teamCount int64, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalTasks: len(tasks),
		TeamCount:  teamCount,
	}

	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusDone:
			stats.CompletedTasks++
		case models.TaskStatusInProgress:
			stats.InProgressTasks++
		case models.TaskStatusTodo:
			stats.TodoTasks++
		}
	}
	for _, e := range events {
		if !e.Date.Before(now) {
			stats.UpcomingEvents++
		}
	}

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	stats.WeeklyData = make([]DayActivity, 7)
	for i := range stats.WeeklyData {
		stats.WeeklyData[i].Name = weekdayNames[i]
	}
	dayIndex := func(t time.Time) int {
		t = t.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if day.Before(weekStart) {
			return -1
		}
		idx := int(day.Sub(weekStart).Hours()+12) / 24
		if idx > 6 {
			return -1
		}
		return idx
	}
	for _, t := range tasks {
		if i := dayIndex(t.CreatedAt); i >= 0 {
			stats.WeeklyData[i].Tasks++
		}
	}
	for _, e := range events {
		if i := dayIndex(e.Date); i >= 0 {
			stats.WeeklyData[i].Events++
		}
	}

	stats.ProgressData = []ProgressSlice{
		{Name: "Completed", Value: stats.CompletedTasks, Color: "#10B981"},
		{Name: "In Progress", Value: stats.InProgressTasks, Color: "#3B82F6"},
		{Name: "Todo", Value: stats.TodoTasks, Color: "#F59E0B"},
	}

	return stats
}
