package billing

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"community-portal/config"
	"community-portal/internal/checkout"
	"community-portal/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
)

type stubSessionCreator struct {
	err error
	got *stripe.CheckoutSessionParams
}

func (s *stubSessionCreator) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	s.got = params
	if s.err != nil {
		return nil, s.err
	}
	return &stripe.CheckoutSession{URL: "https://checkout.stripe.test/s/xyz"}, nil
}

func checkoutRouter(creator checkout.SessionCreator, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.STRIPE_SECRET_KEY = "sk_test_dummy"

	h := NewHandler(checkout.NewInitiator(creator, slog.Default()), metrics.NewCollector())

	r := gin.New()
	r.POST("/create-checkout-session", func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set("user_id", userID)
			c.Set("email", "m@example.com")
		}
	}, h.CreateCheckoutSession)
	return r
}

func postJSON(r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func validBody() map[string]any {
	return map[string]any{
		"price_id":    "price_not_in_catalog",
		"mode":        "payment",
		"success_url": "https://portal.test/success",
		"cancel_url":  "https://portal.test/purchase",
	}
}

func TestCreateCheckoutSessionForwardsUnknownPrice(t *testing.T) {
	creator := &stubSessionCreator{}
	r := checkoutRouter(creator, uuid.New())

	w := postJSON(r, validBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.URL == "" {
		t.Fatalf("response = %s", w.Body.String())
	}

	// The interface contract does not reject client-supplied price ids.
	if got := stripe.StringValue(creator.got.LineItems[0].Price); got != "price_not_in_catalog" {
		t.Errorf("forwarded price = %q", got)
	}
}

func TestCreateCheckoutSessionRequiresUser(t *testing.T) {
	r := checkoutRouter(&stubSessionCreator{}, uuid.Nil)
	if w := postJSON(r, validBody()); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestCreateCheckoutSessionValidatesBody(t *testing.T) {
	r := checkoutRouter(&stubSessionCreator{}, uuid.New())
	body := validBody()
	delete(body, "price_id")
	if w := postJSON(r, body); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateCheckoutSessionProcessorFailure(t *testing.T) {
	r := checkoutRouter(&stubSessionCreator{err: errors.New("boom")}, uuid.New())
	if w := postJSON(r, validBody()); w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}
