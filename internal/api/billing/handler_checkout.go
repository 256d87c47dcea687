package billing

import (
	"errors"
	"net/http"

	"community-portal/config"
	"community-portal/internal/app/http/middleware"
	"community-portal/internal/checkout"
	"community-portal/internal/domain/errs"
	"community-portal/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
)

type Handler struct {
	initiator *checkout.Initiator
	metrics   *metrics.Collector
}

func NewHandler(initiator *checkout.Initiator, collector *metrics.Collector) *Handler {
	return &Handler{initiator: initiator, metrics: collector}
}

// CreateCheckoutSession starts a processor checkout and returns the redirect
// URL. Single attempt; a failed call is surfaced and the user may re-invoke.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	var intent checkout.Intent
	if err := c.ShouldBindJSON(&intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid checkout fields"})
		return
	}

	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}
	email := c.GetString("email")

	url, err := h.initiator.Start(c.Request.Context(), userID, email, intent)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to make a purchase"})
		case errors.Is(err, errs.ErrExternalService):
			h.metrics.RecordCheckout("error")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	h.metrics.RecordCheckout("ok")
	c.JSON(http.StatusOK, gin.H{"url": url})
}
