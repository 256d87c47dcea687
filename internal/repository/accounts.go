package repository

import (
	"context"
	"errors"
	"fmt"

	"community-portal/internal/domain/errs"
	"community-portal/internal/domain/identity"
	"community-portal/internal/domain/profiles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Create(ctx context.Context, acc *identity.Account) error {
	if err := r.db.WithContext(ctx).Create(acc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrConflict
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	var acc identity.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acc, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*identity.Account, error) {
	var acc identity.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &acc, nil
}

func (r *AccountRepo) GetByGoogleSub(ctx context.Context, sub string) (*identity.Account, error) {
	var acc identity.Account
	err := r.db.WithContext(ctx).Where("google_sub = ?", sub).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get account by google sub: %w", err)
	}
	return &acc, nil
}

// DeleteWithProfile removes the profile row and the account row as one
// transaction, so a rejection never leaves an orphan on either side.
func (r *AccountRepo) DeleteWithProfile(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&profiles.Profile{}).Error; err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		res := tx.Where("id = ?", userID).Delete(&identity.Account{})
		if res.Error != nil {
			return fmt.Errorf("delete account: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("delete account with profile: %w", err)
	}
	return nil
}
