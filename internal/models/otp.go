package models

import "time"

// OTP holds the single pending verification code for an email address.
// A new request for the same email overwrites the previous row.
type OTP struct {
	Email string `gorm:"type:text;primaryKey"` // Target email, one live code per address.
	Code  string `gorm:"type:text;not null"`   // 6-digit numeric code.

	CreatedAt time.Time `gorm:"not null"` // Issuance time, reset on every upsert.
}
