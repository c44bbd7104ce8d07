package dto

import (
	"time"

	"github.com/yukikurage/dashboard-api/internal/models"
)

type EventDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	UserID      uint64    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Date:        event.Date,
		Color:       event.Color,
		Description: event.Description,
		UserID:      event.UserID,
		CreatedAt:   event.CreatedAt,
	}
}

func ToEventDTOs(events []models.Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, ToEventDTO(event))
	}
	return dtos
}
