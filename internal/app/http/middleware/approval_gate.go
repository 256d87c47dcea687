package middleware

import (
	"context"
	"errors"
	"net/http"

	"community-portal/internal/domain/access"
	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileGetter is the read the gate needs on every protected request.
type ProfileGetter interface {
	Get(ctx context.Context, userID uuid.UUID) (*profiles.Profile, error)
}

// RequireApproved re-reads the profile and re-evaluates the access state on
// every request. An earlier Admitted decision is never cached, so an
// approval revocation takes effect on the next navigation. Raw store errors
// never reach the client; the gate degrades to its blocking states.
func RequireApproved(store ProfileGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		profile, err := store.Get(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			// Degrade to the pending screen rather than leaking the error.
			profile = nil
		}

		state := access.Evaluate(access.Session{
			SessionPresent: true,
			Profile:        profile,
		})

		switch state {
		case access.StateAdmitted:
			c.Set("profile", profile)
			c.Next()
		case access.StateUnauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Your account is awaiting approval from the administrators",
				"state": string(state),
			})
		}
	}
}

// Profile reads the gated profile set by RequireApproved.
func Profile(c *gin.Context) *profiles.Profile {
	v, exists := c.Get("profile")
	if !exists {
		return nil
	}
	p, ok := v.(*profiles.Profile)
	if !ok {
		return nil
	}
	return p
}
