package identity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the authentication record. Display and authorization state live
// on the profile row keyed by the account ID.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"not null;uniqueIndex:idx_accounts_email"`
	PasswordHash *string   `gorm:""`
	AuthProvider string    `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string   `gorm:"uniqueIndex:idx_accounts_google_sub"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
