package checkout

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"community-portal/internal/domain/entitlement"
	"community-portal/internal/domain/errs"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
)

type mockSessionCreator struct {
	createFn func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	got      *stripe.CheckoutSessionParams
}

func (m *mockSessionCreator) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.got = params
	if m.createFn != nil {
		return m.createFn(params)
	}
	return &stripe.CheckoutSession{URL: "https://checkout.stripe.test/s/abc"}, nil
}

func intent(priceID string, mode entitlement.Mode) Intent {
	return Intent{
		PriceID:    priceID,
		Mode:       mode,
		SuccessURL: "https://portal.test/success",
		CancelURL:  "https://portal.test/purchase",
	}
}

func TestStartForwardsRequestAsSupplied(t *testing.T) {
	creator := &mockSessionCreator{}
	i := NewInitiator(creator, slog.Default())
	userID := uuid.New()

	// Unknown price ids are forwarded, not rejected: the catalog is a UI
	// concern and the processor decides whether the price exists.
	url, err := i.Start(context.Background(), userID, "m@example.com", intent("price_totally_unknown", entitlement.ModePayment))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if url != "https://checkout.stripe.test/s/abc" {
		t.Errorf("url = %q", url)
	}

	p := creator.got
	if p == nil {
		t.Fatal("no session request sent")
	}
	if got := stripe.StringValue(p.LineItems[0].Price); got != "price_totally_unknown" {
		t.Errorf("forwarded price = %q", got)
	}
	if got := stripe.StringValue(p.Mode); got != "payment" {
		t.Errorf("forwarded mode = %q", got)
	}
	if got := stripe.StringValue(p.SuccessURL); got != "https://portal.test/success" {
		t.Errorf("forwarded success_url = %q", got)
	}
	if got := stripe.StringValue(p.CancelURL); got != "https://portal.test/purchase" {
		t.Errorf("forwarded cancel_url = %q", got)
	}
	if got := stripe.StringValue(p.ClientReferenceID); got != userID.String() {
		t.Errorf("client reference = %q, want caller id", got)
	}
}

func TestStartRequiresSession(t *testing.T) {
	creator := &mockSessionCreator{}
	i := NewInitiator(creator, slog.Default())

	_, err := i.Start(context.Background(), uuid.Nil, "", intent("price_x", entitlement.ModeSubscription))
	if !errors.Is(err, errs.ErrUnauthenticated) {
		t.Errorf("Start() error = %v, want ErrUnauthenticated", err)
	}
	if creator.got != nil {
		t.Error("request was sent despite missing session")
	}
}

func TestStartRejectsUnknownMode(t *testing.T) {
	i := NewInitiator(&mockSessionCreator{}, slog.Default())

	_, err := i.Start(context.Background(), uuid.New(), "m@example.com", intent("price_x", "installments"))
	if err == nil {
		t.Fatal("Start() accepted an invalid mode")
	}
}

func TestStartSurfacesProcessorFailure(t *testing.T) {
	creator := &mockSessionCreator{
		createFn: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			return nil, errors.New("rate limited")
		},
	}
	i := NewInitiator(creator, slog.Default())

	_, err := i.Start(context.Background(), uuid.New(), "m@example.com", intent("price_x", entitlement.ModePayment))
	if !errors.Is(err, errs.ErrExternalService) {
		t.Errorf("Start() error = %v, want ErrExternalService", err)
	}

	// No URL in the response is also an external failure.
	creator.createFn = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return &stripe.CheckoutSession{}, nil
	}
	_, err = i.Start(context.Background(), uuid.New(), "m@example.com", intent("price_x", entitlement.ModePayment))
	if !errors.Is(err, errs.ErrExternalService) {
		t.Errorf("Start() with empty URL error = %v, want ErrExternalService", err)
	}
}
