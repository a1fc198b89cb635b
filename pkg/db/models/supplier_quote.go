package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// SupplierQuote is a supplier's priced response to one purchase request.
// Blanket quotes are not bound to a single request's validity window.
type SupplierQuote struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteNumber  string            `gorm:"column:quote_number;not null;uniqueIndex"`
	SupplierID   uuid.UUID         `gorm:"column:supplier_id;type:uuid;not null;index"`
	SupplierName string            `gorm:"column:supplier_name;not null"`
	RequestID    uuid.UUID         `gorm:"column:request_id;type:uuid;not null;index"`
	Status       enums.QuoteStatus `gorm:"column:status;type:quote_status;not null;default:'draft'"`
	ValidUntil   *time.Time        `gorm:"column:valid_until"`
	IsBlanket    bool              `gorm:"column:is_blanket;not null;default:false"`
	Notes        *string           `gorm:"column:notes"`
	Items        []QuoteItem       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
