package events

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	EventDate    time.Time `gorm:"not null" json:"event_date"`
	EventTime    string    `json:"event_time"`
	LocationName string    `json:"location_name"`
	LocationLat  float64   `json:"location_lat"`
	LocationLng  float64   `json:"location_lng"`
	ImageURL     string    `json:"image_url"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Suggestion struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName   string    `json:"user_name"`
	Suggestion string    `gorm:"not null" json:"suggestion"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
