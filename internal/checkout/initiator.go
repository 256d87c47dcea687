package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"community-portal/internal/domain/entitlement"
	"community-portal/internal/domain/errs"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// Intent is one purchase attempt; discarded after the session URL comes back.
type Intent struct {
	PriceID    string           `json:"price_id" binding:"required"`
	Mode       entitlement.Mode `json:"mode" binding:"required"`
	SuccessURL string           `json:"success_url" binding:"required"`
	CancelURL  string           `json:"cancel_url" binding:"required"`
}

// SessionCreator is the single outbound payment-processor call.
type SessionCreator interface {
	CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeSessionCreator calls the live Stripe API.
type StripeSessionCreator struct{}

func (StripeSessionCreator) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return checkoutsession.New(params)
}

// Initiator starts processor checkout sessions. One attempt per call, no
// retry; all state change happens inside the processor and is observed later
// through the entitlement resolver once the webhook pipeline runs.
type Initiator struct {
	sessions SessionCreator
	log      *slog.Logger
}

func NewInitiator(sessions SessionCreator, log *slog.Logger) *Initiator {
	if log == nil {
		log = slog.Default()
	}
	return &Initiator{sessions: sessions, log: log}
}

// Start returns the opaque redirect URL for the checkout session. The price
// id is forwarded as supplied: catalog validation is a UI concern and the
// processor is the authority on whether a price exists.
func (i *Initiator) Start(ctx context.Context, userID uuid.UUID, email string, intent Intent) (string, error) {
	if userID == uuid.Nil {
		return "", errs.ErrUnauthenticated
	}
	if intent.Mode != entitlement.ModePayment && intent.Mode != entitlement.ModeSubscription {
		return "", fmt.Errorf("invalid checkout mode %q", intent.Mode)
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(intent.SuccessURL),
		CancelURL:  stripe.String(intent.CancelURL),
		Mode:       stripe.String(string(intent.Mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(intent.PriceID), Quantity: stripe.Int64(1)},
		},
		CustomerEmail:     stripe.String(email),
		ClientReferenceID: stripe.String(userID.String()),
	}

	s, err := i.sessions.CreateSession(params)
	if err != nil {
		i.log.Warn("checkout session creation failed", "price_id", intent.PriceID, "err", err)
		return "", fmt.Errorf("%w: %v", errs.ErrExternalService, err)
	}
	if s.URL == "" {
		return "", fmt.Errorf("%w: no checkout URL received", errs.ErrExternalService)
	}
	return s.URL, nil
}
