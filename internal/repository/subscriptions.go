package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-portal/internal/domain/entitlement"
	"community-portal/internal/domain/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepo stores the processor-owned subscription snapshots and
// completed one-time orders written by the webhook pipeline.
type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

func (r *SubscriptionRepo) LatestByUserID(ctx context.Context, userID uuid.UUID) (*entitlement.Subscription, error) {
	var sub entitlement.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &sub, nil
}

// Upsert replaces the single snapshot for the account; the unique user_id
// index keeps it at one row.
func (r *SubscriptionRepo) Upsert(ctx context.Context, sub *entitlement.Subscription) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"stripe_customer_id",
				"stripe_subscription_id",
				"price_id",
				"status",
				"current_period_end",
				"updated_at",
			}),
		}).
		Create(sub).Error
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

// UpdateBySubscriptionID refreshes status and period end for a known stripe
// subscription; used by the webhook pipeline for lifecycle events that carry
// no account reference.
func (r *SubscriptionRepo) UpdateBySubscriptionID(ctx context.Context, stripeSubID, status string, periodEnd *time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&entitlement.Subscription{}).
		Where("stripe_subscription_id = ?", stripeSubID).
		Updates(map[string]interface{}{
			"status":             status,
			"current_period_end": periodEnd,
		})
	if res.Error != nil {
		return fmt.Errorf("update subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepo) RecordOrder(ctx context.Context, order *entitlement.Order) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_session_id"}},
			DoNothing: true,
		}).
		Create(order).Error
	if err != nil {
		return fmt.Errorf("record order: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) OrdersByUserID(ctx context.Context, userID uuid.UUID) ([]entitlement.Order, error) {
	var out []entitlement.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}
