package repository

import (
	"context"
	"fmt"

	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Create(ctx context.Context, ev *events.Event) error {
	if err := r.db.WithContext(ctx).Create(ev).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepo) ListUpcoming(ctx context.Context) ([]events.Event, error) {
	var out []events.Event
	err := r.db.WithContext(ctx).Order("event_date ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

func (r *EventRepo) CreateSuggestion(ctx context.Context, s *events.Suggestion) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create suggestion: %w", err)
	}
	return nil
}

func (r *EventRepo) ListSuggestions(ctx context.Context) ([]events.Suggestion, error) {
	var out []events.Suggestion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return out, nil
}

// DeleteSuggestion removes a suggestion only when it belongs to ownerID.
func (r *EventRepo) DeleteSuggestion(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&events.Suggestion{})
	if res.Error != nil {
		return fmt.Errorf("delete suggestion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&events.Suggestion{}).Where("id = ?", id).Count(&count).Error; err == nil && count > 0 {
			return errs.ErrUnauthorized
		}
		return errs.ErrNotFound
	}
	return nil
}
