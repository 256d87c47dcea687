package admission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/profiles"

	"github.com/google/uuid"
)

// ProfileStore is the slice of the profile repository the controller needs.
type ProfileStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*profiles.Profile, error)
	SetApproved(ctx context.Context, userID uuid.UUID, approved bool) error
	SetAdmin(ctx context.Context, userID uuid.UUID, admin bool) error
	ListPending(ctx context.Context) ([]profiles.Profile, error)
	ListAll(ctx context.Context) ([]profiles.Profile, error)
}

// AccountStore removes an identity together with its profile. Stores that
// cannot do this atomically return *errs.PartialFailure.
type AccountStore interface {
	DeleteWithProfile(ctx context.Context, userID uuid.UUID) error
}

// Controller executes administrator-only membership transitions. Every
// operation authorizes the acting user in-process against its own profile;
// it does not trust an upstream policy to have done so.
type Controller struct {
	profiles ProfileStore
	accounts AccountStore
	log      *slog.Logger
}

func NewController(profiles ProfileStore, accounts AccountStore, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{profiles: profiles, accounts: accounts, log: log}
}

func (c *Controller) authorize(ctx context.Context, actorID uuid.UUID) error {
	actor, err := c.profiles.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrUnauthorized
		}
		return err
	}
	if !actor.IsAdmin {
		return errs.ErrUnauthorized
	}
	return nil
}

// Approve admits a member. Idempotent: re-approving an approved profile is a
// no-op with the same outcome.
func (c *Controller) Approve(ctx context.Context, actorID, userID uuid.UUID) error {
	if err := c.authorize(ctx, actorID); err != nil {
		return err
	}
	if err := c.profiles.SetApproved(ctx, userID, true); err != nil {
		return err
	}
	c.log.Info("member approved", "user_id", userID, "actor_id", actorID)
	return nil
}

// Reject removes the member's identity and profile together; irreversible.
// A partial failure is logged distinctly because it leaves the system
// inconsistent and needs operator attention.
func (c *Controller) Reject(ctx context.Context, actorID, userID uuid.UUID) error {
	if err := c.authorize(ctx, actorID); err != nil {
		return err
	}
	if err := c.accounts.DeleteWithProfile(ctx, userID); err != nil {
		var pf *errs.PartialFailure
		if errors.As(err, &pf) {
			c.log.Error("rejection left inconsistent state",
				"user_id", userID,
				"completed", pf.Completed,
				"failed", pf.Failed,
				"err", pf.Err)
			return err
		}
		return fmt.Errorf("reject member: %w", err)
	}
	c.log.Info("member rejected", "user_id", userID, "actor_id", actorID)
	return nil
}

// SetAdmin toggles the admin flag. Idempotent. Self-demotion is allowed;
// callers can remove their own admin rights.
func (c *Controller) SetAdmin(ctx context.Context, actorID, userID uuid.UUID, desired bool) error {
	if err := c.authorize(ctx, actorID); err != nil {
		return err
	}
	if err := c.profiles.SetAdmin(ctx, userID, desired); err != nil {
		return err
	}
	c.log.Info("admin flag set", "user_id", userID, "admin", desired, "actor_id", actorID)
	return nil
}

func (c *Controller) ListPending(ctx context.Context, actorID uuid.UUID) ([]profiles.Profile, error) {
	if err := c.authorize(ctx, actorID); err != nil {
		return nil, err
	}
	return c.profiles.ListPending(ctx)
}

func (c *Controller) ListAll(ctx context.Context, actorID uuid.UUID) ([]profiles.Profile, error) {
	if err := c.authorize(ctx, actorID); err != nil {
		return nil, err
	}
	return c.profiles.ListAll(ctx)
}
