package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/dashboard-api/internal/constants"
	"github.com/yukikurage/dashboard-api/internal/models"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventFieldsMissing = errors.New("title and date are required")
	ErrEventTitleEmpty    = errors.New("title cannot be empty")
)

// EventService handles calendar events. Every event belongs to exactly one user.
type EventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

type CreateEventInput struct {
	UserID      uint64
	Title       string
	Date        *time.Time
	Color       string
	Description string
}

type UpdateEventInput struct {
	Title       *string
	Date        *time.Time
	Color       *string
	Description *string
}

func (s *EventService) ListEvents(userID uint64) ([]models.Event, error) {
	events, err := s.eventRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventService) CreateEvent(input CreateEventInput) (*models.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.Date == nil || input.Date.IsZero() {
		return nil, ErrEventFieldsMissing
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = constants.DefaultEventColor
	}

	event := &models.Event{
		UserID:      input.UserID,
		Title:       title,
		Date:        *input.Date,
		Color:       color,
		Description: strings.TrimSpace(input.Description),
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func (s *EventService) UpdateEvent(eventID, userID uint64, input UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.FindByIDForUser(eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrEventTitleEmpty
		}
		event.Title = title
	}
	if input.Date != nil && !input.Date.IsZero() {
		event.Date = *input.Date
	}
	if input.Color != nil {
		if color := strings.TrimSpace(*input.Color); color != "" {
			event.Color = color
		}
	}
	if input.Description != nil {
		event.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

func (s *EventService) DeleteEvent(eventID, userID uint64) error {
	if err := s.eventRepo.DeleteForUser(eventID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
