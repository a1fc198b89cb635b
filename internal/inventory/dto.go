package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// ProductDTO is the transport shape for inventory products. StockLevel is
// derived at read time, never stored.
type ProductDTO struct {
	ID                uuid.UUID         `json:"id"`
	SKU               string            `json:"sku"`
	Name              string            `json:"name"`
	Category          string            `json:"category"`
	Unit              enums.ProductUnit `json:"unit"`
	CurrentStock      decimal.Decimal   `json:"current_stock"`
	MinStock          decimal.Decimal   `json:"min_stock"`
	MaxStock          decimal.Decimal   `json:"max_stock"`
	StockLevel        enums.StockLevel  `json:"stock_level"`
	StorageLocation   *string           `json:"storage_location,omitempty"`
	DefaultSupplierID *uuid.UUID        `json:"default_supplier_id,omitempty"`
	IsActive          bool              `json:"is_active"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// CreateProductDTO holds creation-time data for a new product.
type CreateProductDTO struct {
	SKU               string
	Name              string
	Category          string
	Unit              enums.ProductUnit
	CurrentStock      decimal.Decimal
	MinStock          decimal.Decimal
	MaxStock          decimal.Decimal
	StorageLocation   *string
	DefaultSupplierID *uuid.UUID
}

// UpdateProductInput captures the allowed product fields for mutation. Stock
// itself moves only through AdjustStock so every change leaves a movement row.
type UpdateProductInput struct {
	Name              *string
	Category          *string
	Unit              *enums.ProductUnit
	MinStock          *decimal.Decimal
	MaxStock          *decimal.Decimal
	StorageLocation   *string
	DefaultSupplierID *uuid.UUID
}

// AdjustStockInput describes one manual or order-driven stock change.
type AdjustStockInput struct {
	Delta   decimal.Decimal
	Reason  enums.StockMovementReason
	OrderID *uuid.UUID
	Notes   *string
	ActorID uuid.UUID
}

// FromModel maps the persisted product into a DTO.
func FromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}
	return &ProductDTO{
		ID:                m.ID,
		SKU:               m.SKU,
		Name:              m.Name,
		Category:          m.Category,
		Unit:              m.Unit,
		CurrentStock:      m.CurrentStock,
		MinStock:          m.MinStock,
		MaxStock:          m.MaxStock,
		StockLevel:        StockLevelFor(m.CurrentStock, m.MinStock, m.MaxStock),
		StorageLocation:   m.StorageLocation,
		DefaultSupplierID: m.DefaultSupplierID,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO.
func (c CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		SKU:               c.SKU,
		Name:              c.Name,
		Category:          c.Category,
		Unit:              c.Unit,
		CurrentStock:      c.CurrentStock,
		MinStock:          c.MinStock,
		MaxStock:          c.MaxStock,
		StorageLocation:   c.StorageLocation,
		DefaultSupplierID: c.DefaultSupplierID,
		IsActive:          true,
	}
}

// MovementPage is one slice of a product's movement history.
type MovementPage struct {
	Movements  []models.StockMovement `json:"movements"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}
