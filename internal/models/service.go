package models

import (
	"time"

	"gorm.io/datatypes"
)

// Service represents a production service offered on the site.
type Service struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title           string `gorm:"type:text;not null"`      // Service title.
	Slug            string `gorm:"type:text;uniqueIndex"`   // URL slug derived from the title.
	Description     string `gorm:"type:text;not null"`      // Short description.
	LongDescription string `gorm:"type:text"`               // Detailed description.

	Icon     string         `gorm:"type:text"`                      // Icon identifier.
	Image    string         `gorm:"type:text"`                      // Hero image URL.
	Features datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Feature bullet list.

	StartingPrice float64 `gorm:"type:decimal(10,2);not null;default:0"` // Starting price.

	IsActive  bool `gorm:"not null;default:true"` // Whether the service is published.
	SortOrder int  `gorm:"not null;default:0"`    // Display ordering weight.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
