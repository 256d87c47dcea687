package profiles

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the portal's record of a member: display fields owned by the
// user, authorization fields owned by the admission flow. Exactly one row
// per account.
type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_profiles_user_id" json:"user_id"`

	Email           string `gorm:"not null" json:"email"`
	FullName        string `json:"full_name"`
	PhoneNumber     string `json:"phone_number"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url"`

	IsApproved bool `gorm:"not null;default:false" json:"is_approved"`
	IsAdmin    bool `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
