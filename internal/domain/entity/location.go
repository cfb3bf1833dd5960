package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location represents a bookable co-working space
type Location struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Slug            string         `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Address         string         `gorm:"size:255" json:"address"`
	HourlyRateCents int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Seats           int            `gorm:"default:0" json:"seats"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l Location) MarshalJSON() ([]byte, error) {
	type Alias Location
	return json.Marshal(&struct {
		Alias
		HourlyRate float64 `json:"hourly_rate"`
	}{
		Alias:      Alias(l),
		HourlyRate: float64(l.HourlyRateCents) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new location
func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
