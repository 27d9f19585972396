package models

import (
	"time"

	"gorm.io/datatypes"
)

// Billing cycle values for plans.
const (
	BillingCycleHourly  = "hourly"
	BillingCycleDaily   = "daily"
	BillingCycleMonthly = "monthly"
	BillingCycleYearly  = "yearly"
	BillingCycleProject = "project"
)

// Plan represents a pricing plan shown on the site.
type Plan struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name        string `gorm:"type:text;not null"` // Plan name.
	Description string `gorm:"type:text"`          // Plan description.

	Price        float64 `gorm:"type:decimal(10,2);not null"`          // Price amount.
	Currency     string  `gorm:"type:text;not null;default:INR"`       // Price currency.
	BillingCycle string  `gorm:"type:text;not null;default:hourly"`    // One of hourly, daily, monthly, yearly, project.

	Features datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Feature entries {text, included}.

	IsPopular  bool   `gorm:"not null;default:false"`            // Highlight flag.
	ButtonText string `gorm:"type:text;not null;default:'Book Now'"` // CTA label.

	IsActive  bool `gorm:"not null;default:true"` // Whether the plan is published.
	SortOrder int  `gorm:"not null;default:0"`    // Display ordering weight.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
