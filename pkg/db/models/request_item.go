package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// RequestItem is one requested ingredient line within a purchase request.
// PricePerUnit is a placeholder estimate until supplier quotes arrive.
type RequestItem struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RequestID    uuid.UUID         `gorm:"column:request_id;type:uuid;not null;index"`
	ProductID    uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	ProductName  string            `gorm:"column:product_name;not null"`
	Category     string            `gorm:"column:category;not null"`
	Quantity     decimal.Decimal   `gorm:"column:quantity;type:numeric(12,3);not null"`
	Unit         enums.ProductUnit `gorm:"column:unit;type:product_unit;not null"`
	PricePerUnit decimal.Decimal   `gorm:"column:price_per_unit;type:numeric(12,4);not null;default:0"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
