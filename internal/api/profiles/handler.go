package profiles

import (
	"context"
	"errors"
	"net/http"

	"community-portal/internal/app/http/middleware"
	"community-portal/internal/domain/access"
	"community-portal/internal/domain/entitlement"
	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileStore is the profile repository surface the member-facing handlers
// use. Approval and admin flags are not reachable through it.
type ProfileStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*profiles.Profile, error)
	Ensure(ctx context.Context, userID uuid.UUID, email string) (*profiles.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, upd profiles.ProfileUpdate) (*profiles.Profile, error)
}

type Handler struct {
	profiles ProfileStore
	resolver *entitlement.Resolver
}

func NewHandler(store ProfileStore, resolver *entitlement.Resolver) *Handler {
	return &Handler{profiles: store, resolver: resolver}
}

type meResponse struct {
	Profile     *profiles.Profile       `json:"profile"`
	AccessState string                  `json:"access_state"`
	Entitlement entitlement.Entitlement `json:"entitlement"`
}

// Me is the session lookup: the profile is created lazily here on first
// authenticated access, unapproved and non-admin. The response carries the
// freshly evaluated access state so the client never reuses a stale one.
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.UserID(c)
	email := c.GetString("email")
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.profiles.Ensure(c.Request.Context(), userID, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	state := access.Evaluate(access.Session{
		SessionPresent: true,
		Profile:        profile,
	})

	ent, err := h.resolver.Resolve(c.Request.Context(), userID)
	if err != nil {
		// Entitlement is decorative on this endpoint; degrade to none.
		ent = entitlement.None("none")
	}

	c.JSON(http.StatusOK, meResponse{
		Profile:     profile,
		AccessState: string(state),
		Entitlement: ent,
	})
}

// UpdateProfile applies the user-editable fields only. Attempts to set
// approval or admin flags do not bind and are dropped.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var upd profiles.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), userID, upd)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
