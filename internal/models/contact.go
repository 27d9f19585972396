package models

import "time"

// Contact represents a contact-form submission.
type Contact struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name    string `gorm:"type:text;not null"` // Sender name.
	Email   string `gorm:"type:text;not null"` // Sender email.
	Subject string `gorm:"type:text"`          // Message subject.
	Message string `gorm:"type:text;not null"` // Message body.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Submission timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
