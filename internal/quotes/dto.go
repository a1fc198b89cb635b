package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	"github.com/procurechef/procurechef-backend/pkg/types"
)

// QuoteItemDTO is one priced line as exposed over the API.
type QuoteItemDTO struct {
	ID                  uuid.UUID                `json:"id"`
	ProductID           uuid.UUID                `json:"product_id"`
	ProductName         string                   `json:"product_name"`
	Quantity            decimal.Decimal          `json:"quantity"`
	Unit                enums.ProductUnit        `json:"unit"`
	PricePerUnit        decimal.Decimal          `json:"price_per_unit"`
	InStock             bool                     `json:"in_stock"`
	SupplierProductCode *string                  `json:"supplier_product_code,omitempty"`
	MinimumOrderQty     *decimal.Decimal         `json:"minimum_order_qty,omitempty"`
	PackageConversion   *types.PackageConversion `json:"package_conversion,omitempty"`
}

// SupplierQuoteDTO is the API shape of a supplier quote.
type SupplierQuoteDTO struct {
	ID           uuid.UUID         `json:"id"`
	QuoteNumber  string            `json:"quote_number"`
	SupplierID   uuid.UUID         `json:"supplier_id"`
	SupplierName string            `json:"supplier_name"`
	RequestID    uuid.UUID         `json:"request_id"`
	Status       enums.QuoteStatus `json:"status"`
	ValidUntil   *time.Time        `json:"valid_until,omitempty"`
	IsBlanket    bool              `json:"is_blanket"`
	Notes        *string           `json:"notes,omitempty"`
	Items        []QuoteItemDTO    `json:"items"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// RecordItemInput is one priced line of an incoming quote.
type RecordItemInput struct {
	ProductID           uuid.UUID                `json:"product_id" validate:"required"`
	Quantity            decimal.Decimal          `json:"quantity" validate:"required"`
	PricePerUnit        decimal.Decimal          `json:"price_per_unit" validate:"required"`
	InStock             *bool                    `json:"in_stock"`
	SupplierProductCode *string                  `json:"supplier_product_code"`
	MinimumOrderQty     *decimal.Decimal         `json:"minimum_order_qty"`
	PackageConversion   *types.PackageConversion `json:"package_conversion"`
}

// RecordQuoteInput captures a supplier's response to one request.
type RecordQuoteInput struct {
	SupplierID uuid.UUID         `json:"supplier_id" validate:"required"`
	RequestID  uuid.UUID         `json:"request_id" validate:"required"`
	ValidUntil *time.Time        `json:"valid_until"`
	IsBlanket  bool              `json:"is_blanket"`
	Notes      *string           `json:"notes"`
	Items      []RecordItemInput `json:"items" validate:"required,min=1,dive"`
}

// ListFilter narrows quote listings.
type ListFilter struct {
	RequestIDs []uuid.UUID
	SupplierID *uuid.UUID
	Statuses   []enums.QuoteStatus
}

// FromModel maps a persisted quote into its DTO.
func FromModel(quote *models.SupplierQuote) *SupplierQuoteDTO {
	items := make([]QuoteItemDTO, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, QuoteItemDTO{
			ID:                  item.ID,
			ProductID:           item.ProductID,
			ProductName:         item.ProductName,
			Quantity:            item.Quantity,
			Unit:                item.Unit,
			PricePerUnit:        item.PricePerUnit,
			InStock:             item.InStock,
			SupplierProductCode: item.SupplierProductCode,
			MinimumOrderQty:     item.MinimumOrderQty,
			PackageConversion:   item.PackageConversion,
		})
	}
	return &SupplierQuoteDTO{
		ID:           quote.ID,
		QuoteNumber:  quote.QuoteNumber,
		SupplierID:   quote.SupplierID,
		SupplierName: quote.SupplierName,
		RequestID:    quote.RequestID,
		Status:       quote.Status,
		ValidUntil:   quote.ValidUntil,
		IsBlanket:    quote.IsBlanket,
		Notes:        quote.Notes,
		Items:        items,
		CreatedAt:    quote.CreatedAt,
		UpdatedAt:    quote.UpdatedAt,
	}
}
