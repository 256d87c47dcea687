package entitlement

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is the latest processor-owned snapshot for one account,
// written only by the webhook reconciliation pipeline and read here. At most
// one row per account.
type Subscription struct {
	ID     uint      `gorm:"primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_id"`

	StripeCustomerID     *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_subscriptions_stripe_customer_id"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id"`
	PriceID              *string `gorm:"column:price_id"`
	Status               string  `gorm:"not null;default:'none'"`

	CurrentPeriodEnd *time.Time `gorm:"column:current_period_end"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order records a completed one-time checkout, written by the webhook
// pipeline for catalog items with mode "payment".
type Order struct {
	ID     uint      `gorm:"primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	StripeSessionID string `gorm:"uniqueIndex"`
	PriceID         string
	AmountTotal     float64
	Currency        string
	Status          string

	CreatedAt time.Time
}
