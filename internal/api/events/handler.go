package events

import (
	"context"
	"errors"
	"net/http"
	"time"

	"community-portal/internal/app/http/middleware"
	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/events"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventStore interface {
	Create(ctx context.Context, ev *events.Event) error
	ListUpcoming(ctx context.Context) ([]events.Event, error)
	CreateSuggestion(ctx context.Context, s *events.Suggestion) error
	ListSuggestions(ctx context.Context) ([]events.Suggestion, error)
	DeleteSuggestion(ctx context.Context, id, ownerID uuid.UUID) error
}

type Handler struct {
	store EventStore
}

func NewHandler(store EventStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListEvents(c *gin.Context) {
	out, err := h.store.ListUpcoming(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load events"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var input struct {
		Title        string  `json:"title" binding:"required"`
		Description  string  `json:"description"`
		EventDate    string  `json:"event_date" binding:"required"`
		EventTime    string  `json:"event_time"`
		LocationName string  `json:"location_name"`
		LocationLat  float64 `json:"location_lat"`
		LocationLng  float64 `json:"location_lng"`
		ImageURL     string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", input.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_date must be YYYY-MM-DD"})
		return
	}

	ev := events.Event{
		Title:        input.Title,
		Description:  input.Description,
		EventDate:    date,
		EventTime:    input.EventTime,
		LocationName: input.LocationName,
		LocationLat:  input.LocationLat,
		LocationLng:  input.LocationLng,
		ImageURL:     input.ImageURL,
		CreatedBy:    middleware.UserID(c),
	}
	if err := h.store.Create(c.Request.Context(), &ev); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *Handler) ListSuggestions(c *gin.Context) {
	out, err := h.store.ListSuggestions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load suggestions"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateSuggestion(c *gin.Context) {
	var input struct {
		Suggestion string `json:"suggestion" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing suggestion"})
		return
	}

	userName := ""
	if p := middleware.Profile(c); p != nil {
		userName = p.FullName
	}

	s := events.Suggestion{
		UserID:     middleware.UserID(c),
		UserName:   userName,
		Suggestion: input.Suggestion,
	}
	if err := h.store.CreateSuggestion(c.Request.Context(), &s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create suggestion"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// DeleteSuggestion removes the caller's own suggestion only.
func (h *Handler) DeleteSuggestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suggestion id"})
		return
	}

	err = h.store.DeleteSuggestion(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		case errors.Is(err, errs.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your suggestion"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete suggestion"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Suggestion deleted"})
}
