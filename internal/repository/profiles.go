package repository

import (
	"context"
	"errors"
	"fmt"

	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/profiles"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepo is the GORM-backed profile store. One row per account id,
// enforced by the unique index on user_id.
type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*profiles.Profile, error) {
	var p profiles.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Ensure creates the profile on first authenticated access. Concurrent
// callers race to the unique user_id index; the loser's insert is a no-op
// and both converge on the follow-up read.
func (r *ProfileRepo) Ensure(ctx context.Context, userID uuid.UUID, email string) (*profiles.Profile, error) {
	p := profiles.Profile{
		UserID:     userID,
		Email:      email,
		IsApproved: false,
		IsAdmin:    false,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&p).Error
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}
	return r.Get(ctx, userID)
}

// Update applies the user-editable fields only.
func (r *ProfileRepo) Update(ctx context.Context, userID uuid.UUID, upd profiles.ProfileUpdate) (*profiles.Profile, error) {
	fields := upd.Fields()
	if len(fields) == 0 {
		return r.Get(ctx, userID)
	}

	res := r.db.WithContext(ctx).
		Model(&profiles.Profile{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrNotFound
	}
	return r.Get(ctx, userID)
}

func (r *ProfileRepo) SetApproved(ctx context.Context, userID uuid.UUID, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&profiles.Profile{}).
		Where("user_id = ?", userID).
		Update("is_approved", approved)
	if res.Error != nil {
		return fmt.Errorf("set approved: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *ProfileRepo) SetAdmin(ctx context.Context, userID uuid.UUID, admin bool) error {
	res := r.db.WithContext(ctx).
		Model(&profiles.Profile{}).
		Where("user_id = ?", userID).
		Update("is_admin", admin)
	if res.Error != nil {
		return fmt.Errorf("set admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *ProfileRepo) ListPending(ctx context.Context) ([]profiles.Profile, error) {
	var out []profiles.Profile
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list pending profiles: %w", err)
	}
	return out, nil
}

func (r *ProfileRepo) ListAll(ctx context.Context) ([]profiles.Profile, error) {
	var out []profiles.Profile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}
