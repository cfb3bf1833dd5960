package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mps-sg/bookspace-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PassPackage represents a prepaid bundle of booking credits owned by a user
type PassPackage struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string           `gorm:"size:100;not null" json:"name"`
	PackageType enum.PackageType `gorm:"default:0" json:"package_type"`
	TotalPasses int              `gorm:"not null" json:"total_passes"`
	PassesUsed  int              `gorm:"default:0" json:"passes_used"`
	ExpiresAt   time.Time        `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new package
func (p *PassPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PassPackage model
func (PassPackage) TableName() string {
	return "pass_packages"
}

// Remaining returns the number of unused passes
func (p *PassPackage) Remaining() int {
	return p.TotalPasses - p.PassesUsed
}

// IsExpired checks whether the package has passed its expiry
func (p *PassPackage) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
