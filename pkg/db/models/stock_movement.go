package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// StockMovement is the audit trail for every change to a product's stock.
type StockMovement struct {
	ID        uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID                 `gorm:"column:product_id;type:uuid;not null;index"`
	Delta     decimal.Decimal           `gorm:"column:delta;type:numeric(12,3);not null"`
	Reason    enums.StockMovementReason `gorm:"column:reason;type:stock_movement_reason;not null"`
	OrderID   *uuid.UUID                `gorm:"column:order_id;type:uuid"`
	Notes     *string                   `gorm:"column:notes"`
	CreatedBy uuid.UUID                 `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt time.Time                 `gorm:"column:created_at;autoCreateTime"`
}
