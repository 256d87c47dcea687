package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"community-portal/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

func (h *Handler) handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	// Fetch full session with expansions
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("line_items"),
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	userID, err := userIDFromClientRef(fullSession.ClientReferenceID)
	if err != nil {
		return err
	}

	priceID := ""
	if fullSession.LineItems != nil && len(fullSession.LineItems.Data) > 0 && fullSession.LineItems.Data[0].Price != nil {
		priceID = fullSession.LineItems.Data[0].Price.ID
	}

	switch fullSession.Mode {
	case stripe.CheckoutSessionModePayment:
		order := entitlement.Order{
			UserID:          userID,
			StripeSessionID: fullSession.ID,
			PriceID:         priceID,
			AmountTotal:     float64(fullSession.AmountTotal) / 100.0,
			Currency:        string(fullSession.Currency),
			Status:          string(fullSession.PaymentStatus),
		}
		if err := h.store.RecordOrder(c.Request.Context(), &order); err != nil {
			return fmt.Errorf("failed to record order: %w", err)
		}
		return nil

	case stripe.CheckoutSessionModeSubscription:
		if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
			return errors.New("checkout session missing subscription")
		}

		subData, err := subscription.Get(fullSession.Subscription.ID, nil)
		if err != nil || subData == nil {
			return fmt.Errorf("failed to fetch subscription: %w", err)
		}
		if priceID == "" && subData.Items != nil && len(subData.Items.Data) > 0 && subData.Items.Data[0].Price != nil {
			priceID = subData.Items.Data[0].Price.ID
		}

		periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)
		snapshot := entitlement.Subscription{
			UserID:               userID,
			StripeSubscriptionID: stripe.String(subData.ID),
			PriceID:              stripe.String(priceID),
			Status:               string(subData.Status),
			CurrentPeriodEnd:     &periodEnd,
		}
		if fullSession.Customer != nil && fullSession.Customer.ID != "" {
			snapshot.StripeCustomerID = stripe.String(fullSession.Customer.ID)
		}
		if err := h.store.Upsert(c.Request.Context(), &snapshot); err != nil {
			return fmt.Errorf("failed to store subscription snapshot: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unexpected checkout mode %q", fullSession.Mode)
	}
}

func userIDFromClientRef(clientRef string) (uuid.UUID, error) {
	if clientRef == "" {
		return uuid.Nil, errors.New("missing client_reference_id")
	}
	id, err := uuid.Parse(clientRef)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid client_reference_id %q: %w", clientRef, err)
	}
	return id, nil
}
