package stripewebhooks

import (
	"errors"
	"fmt"

	"community-portal/internal/domain/errs"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionDeleted(c *gin.Context, sub *stripe.Subscription) error {
	err := h.store.UpdateBySubscriptionID(c.Request.Context(), sub.ID, "canceled", nil)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			h.log.Warn("subscription delete for unknown subscription", "stripe_subscription_id", sub.ID)
			return nil
		}
		return fmt.Errorf("failed to mark subscription canceled: %w", err)
	}
	return nil
}
