package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/dashboard-api/internal/errors"
	"github.com/yukikurage/dashboard-api/internal/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	events, err := h.eventService.ListEvents(userID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTOs(events))
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type CreateEventRequest struct {
		Title       string     `json:"title" binding:"max=255"`
		Date        *time.Time `json:"date"`
		Color       string     `json:"color" binding:"omitempty,max=20"`
		Description string     `json:"description"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(services.CreateEventInput{
		UserID:      userID,
		Title:       req.Title,
		Date:        req.Date,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*event))
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "id", services.ErrEventNotFound.Error())
	if !ok {
		return
	}

	type UpdateEventRequest struct {
		Title       *string    `json:"title"`
		Date        *time.Time `json:"date"`
		Color       *string    `json:"color"`
		Description *string    `json:"description"`
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.UpdateEvent(eventID, userID, services.UpdateEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "id", services.ErrEventNotFound.Error())
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(eventID, userID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEventFieldsMissing),
		errors.Is(err, services.ErrEventTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error", err)
	}
}
