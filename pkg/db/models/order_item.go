package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// OrderItem captures the snapshot of each line within a purchase order.
type OrderItem struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID    uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	ProductName  string                `gorm:"column:product_name;not null"`
	Quantity     decimal.Decimal       `gorm:"column:quantity;type:numeric(12,3);not null"`
	Unit         enums.ProductUnit     `gorm:"column:unit;type:product_unit;not null"`
	PricePerUnit decimal.Decimal       `gorm:"column:price_per_unit;type:numeric(12,4);not null"`
	ReceivedQty  decimal.Decimal       `gorm:"column:received_qty;type:numeric(12,3);not null;default:0"`
	Status       enums.OrderItemStatus `gorm:"column:status;type:order_item_status;not null;default:'pending'"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
