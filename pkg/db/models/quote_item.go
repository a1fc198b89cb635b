package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/enums"
	"github.com/procurechef/procurechef-backend/pkg/types"
)

// QuoteItem is one priced, stocked line within a supplier quote.
type QuoteItem struct {
	ID                  uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID             uuid.UUID                `gorm:"column:quote_id;type:uuid;not null;index"`
	ProductID           uuid.UUID                `gorm:"column:product_id;type:uuid;not null"`
	ProductName         string                   `gorm:"column:product_name;not null"`
	Quantity            decimal.Decimal          `gorm:"column:quantity;type:numeric(12,3);not null"`
	Unit                enums.ProductUnit        `gorm:"column:unit;type:product_unit;not null"`
	PricePerUnit        decimal.Decimal          `gorm:"column:price_per_unit;type:numeric(12,4);not null"`
	InStock             bool                     `gorm:"column:in_stock;not null;default:true"`
	SupplierProductCode *string                  `gorm:"column:supplier_product_code"`
	MinimumOrderQty     *decimal.Decimal         `gorm:"column:minimum_order_qty;type:numeric(12,3)"`
	PackageConversion   *types.PackageConversion `gorm:"column:package_conversion;type:jsonb"`
	CreatedAt           time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
