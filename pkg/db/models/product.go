package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// Product is an ingredient the kitchen stocks and reorders.
type Product struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU               string            `gorm:"column:sku;not null;uniqueIndex"`
	Name              string            `gorm:"column:name;not null"`
	Category          string            `gorm:"column:category;not null"`
	Unit              enums.ProductUnit `gorm:"column:unit;type:product_unit;not null"`
	CurrentStock      decimal.Decimal   `gorm:"column:current_stock;type:numeric(12,3);not null;default:0"`
	MinStock          decimal.Decimal   `gorm:"column:min_stock;type:numeric(12,3);not null;default:0"`
	MaxStock          decimal.Decimal   `gorm:"column:max_stock;type:numeric(12,3);not null;default:0"`
	StorageLocation   *string           `gorm:"column:storage_location"`
	DefaultSupplierID *uuid.UUID        `gorm:"column:default_supplier_id;type:uuid"`
	IsActive          bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
