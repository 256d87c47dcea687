package entitlement

import (
	"context"
	"errors"

	"community-portal/internal/domain/errs"

	"github.com/google/uuid"
)

// SubscriptionReader is the read side of the store the reconciliation
// pipeline writes into.
type SubscriptionReader interface {
	LatestByUserID(ctx context.Context, userID uuid.UUID) (*Subscription, error)
}

// Entitlement is the derived access right. Product is set only when the
// entitlement is active.
type Entitlement struct {
	Active  bool     `json:"active"`
	Status  string   `json:"status"`
	Product *Product `json:"product,omitempty"`
}

// None is the zero entitlement returned whenever no record exists, the
// status is not active, or the price id is unknown to the catalog.
func None(status string) Entitlement {
	return Entitlement{Active: false, Status: status}
}

// Resolver maps the processor-owned subscription snapshot to an entitlement.
// Read-only; safe to call on every request.
type Resolver struct {
	subs SubscriptionReader
}

func NewResolver(subs SubscriptionReader) *Resolver {
	return &Resolver{subs: subs}
}

func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (Entitlement, error) {
	sub, err := r.subs.LatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return None("none"), nil
		}
		return None("none"), err
	}

	status := NormalizeStatus(sub.Status)
	if status != "active" {
		return None(status), nil
	}
	if sub.PriceID == nil {
		return None(status), nil
	}

	product, ok := ProductByPriceID(*sub.PriceID)
	if !ok {
		return None(status), nil
	}

	return Entitlement{Active: true, Status: status, Product: &product}, nil
}
