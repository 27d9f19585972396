package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider identifiers accepted for user accounts.
const (
	// ProviderEmail marks accounts registered with an email address.
	ProviderEmail = "email"
	// ProviderPhone marks accounts registered with a phone number.
	ProviderPhone = "phone"
	// ProviderGoogle marks accounts created through Google sign-in.
	ProviderGoogle = "google"
)

// Role identifiers carried by principals.
const (
	// RoleUser is the default role for registered accounts.
	RoleUser = "user"
	// RoleAdmin grants access to management endpoints.
	RoleAdmin = "admin"
)

// User represents an end-user account stored in the database.
type User struct {
	ID string `gorm:"type:uuid;primaryKey"` // Opaque unique id.

	Email       *string `gorm:"type:text;uniqueIndex"` // Email address, lowercased; nil for phone-only accounts.
	PhoneNumber *string `gorm:"type:text;index"`       // Phone number; nil for email-only accounts.
	Password    string  `gorm:"type:text" json:"-"`    // bcrypt hash; empty for OAuth-only accounts.

	DisplayName string `gorm:"type:text;not null"`             // Display name.
	PhotoURL    string `gorm:"type:text"`                      // Avatar URL.
	Provider    string `gorm:"type:text;not null"`             // One of email, phone, google.
	Role        string `gorm:"type:text;not null;default:user"` // Account role.

	EmailVerified bool `gorm:"not null;default:false"` // Whether the email address was verified.
	PhoneVerified bool `gorm:"not null;default:false"` // Whether the phone number was verified.
	IsActive      bool `gorm:"not null;default:true"`  // Inactive accounts cannot authenticate.

	LastLogin *time.Time // Last successful password login.

	Bookings []Booking `gorm:"foreignKey:UserID"` // Related bookings.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// BeforeCreate assigns a UUID primary key when none is set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
