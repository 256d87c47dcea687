package stripewebhooks

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"community-portal/config"
	"community-portal/internal/domain/entitlement"
	"community-portal/internal/metrics"

	"github.com/gin-gonic/gin"
)

type mockStore struct {
	upsertFn func(ctx context.Context, sub *entitlement.Subscription) error
}

func (m *mockStore) Upsert(ctx context.Context, sub *entitlement.Subscription) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, sub)
	}
	return nil
}

func (m *mockStore) RecordOrder(ctx context.Context, order *entitlement.Order) error {
	return nil
}

func (m *mockStore) UpdateBySubscriptionID(ctx context.Context, stripeSubID, status string, periodEnd *time.Time) error {
	return nil
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.STRIPE_SECRET_KEY = "sk_test_dummy"
	config.STRIPE_WEBHOOK_SECRET = "whsec_dummy"

	h := NewHandler(&mockStore{}, metrics.NewCollector(), slog.Default())
	r := gin.New()
	r.POST("/webhook", h.StripeWebhook)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte(`{"type":"checkout.session.completed"}`)))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
}

func TestStripeWebhookRequiresConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.STRIPE_SECRET_KEY = "sk_test_dummy"
	config.STRIPE_WEBHOOK_SECRET = ""

	h := NewHandler(&mockStore{}, metrics.NewCollector(), slog.Default())
	r := gin.New()
	r.POST("/webhook", h.StripeWebhook)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte(`{}`))))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
