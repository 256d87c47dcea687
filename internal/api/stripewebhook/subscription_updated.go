package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"community-portal/internal/domain/errs"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionUpdated(c *gin.Context, sub *stripe.Subscription) error {
	var periodEnd *time.Time
	if sub.CurrentPeriodEnd > 0 {
		t := time.Unix(sub.CurrentPeriodEnd, 0)
		periodEnd = &t
	}

	err := h.store.UpdateBySubscriptionID(c.Request.Context(), sub.ID, string(sub.Status), periodEnd)
	if err != nil {
		// An update for a subscription we never recorded is not retryable;
		// the completed-checkout event will bring the row in.
		if errors.Is(err, errs.ErrNotFound) {
			h.log.Warn("subscription update for unknown subscription", "stripe_subscription_id", sub.ID)
			return nil
		}
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}
