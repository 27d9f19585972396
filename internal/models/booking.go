package models

import "time"

// Booking status values.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Booking represents a studio session booked by a user.
type Booking struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID string `gorm:"type:uuid;not null;index"` // Owning user id.
	User   *User  `gorm:"foreignKey:UserID"`        // Owning user.

	Service   string    `gorm:"type:text;not null"` // Booked service slug.
	Date      time.Time `gorm:"not null"`           // Session date.
	StartTime string    `gorm:"type:text;not null"` // Session start, HH:MM.
	Duration  int       `gorm:"not null"`           // Session length in hours.

	Status        string  `gorm:"type:text;not null;default:pending"`    // Booking lifecycle status.
	TotalPrice    float64 `gorm:"type:decimal(10,2);not null"`           // Quoted price.
	PaymentStatus string  `gorm:"type:text;not null;default:pending"`    // Payment lifecycle status.
	Notes         string  `gorm:"type:text"`                             // Free-form customer notes.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
