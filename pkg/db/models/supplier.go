package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Supplier is a vendor the kitchen solicits quotes from.
type Supplier struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	ContactName  *string        `gorm:"column:contact_name"`
	Email        *string        `gorm:"column:email"`
	Phone        *string        `gorm:"column:phone"`
	Address      *string        `gorm:"column:address"`
	PaymentTerms *string        `gorm:"column:payment_terms"`
	LeadTimeDays int            `gorm:"column:lead_time_days;not null;default:1"`
	Categories   pq.StringArray `gorm:"column:categories;type:text[]"`
	Rating       *float64       `gorm:"column:rating;type:numeric(3,2)"`
	Notes        *string        `gorm:"column:notes"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
