package billing

import (
	"context"
	"net/http"

	"community-portal/internal/app/http/middleware"
	"community-portal/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderReader lists a member's completed one-time purchases.
type OrderReader interface {
	OrdersByUserID(ctx context.Context, userID uuid.UUID) ([]entitlement.Order, error)
}

type SubscriptionHandler struct {
	resolver *entitlement.Resolver
	orders   OrderReader
}

func NewSubscriptionHandler(resolver *entitlement.Resolver, orders OrderReader) *SubscriptionHandler {
	return &SubscriptionHandler{resolver: resolver, orders: orders}
}

// GetSubscription returns the caller's derived entitlement: the catalog item
// when the processor snapshot is active and known, no entitlement otherwise.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ent, err := h.resolver.Resolve(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve entitlement"})
		return
	}
	c.JSON(http.StatusOK, ent)
}

func (h *SubscriptionHandler) GetOrderHistory(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.orders.OrdersByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListCatalog returns the fixed purchasable-item list.
func (h *SubscriptionHandler) ListCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, entitlement.Catalog)
}
