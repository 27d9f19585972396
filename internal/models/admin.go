package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin represents a management account. Admins live in their own table
// and are unified with users only at the authorization boundary.
type Admin struct {
	ID string `gorm:"type:uuid;primaryKey"` // Opaque unique id, shares the user id space.

	Email    string `gorm:"type:text;not null;uniqueIndex"` // Login email, lowercased.
	Password string `gorm:"type:text;not null" json:"-"`    // bcrypt hash.

	DisplayName string `gorm:"type:text;not null;default:Admin"` // Display name.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// BeforeCreate assigns a UUID primary key when none is set.
func (a *Admin) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
