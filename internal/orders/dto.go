package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// OrderItemDTO is one order line as exposed over the API.
type OrderItemDTO struct {
	ID           uuid.UUID             `json:"id"`
	ProductID    uuid.UUID             `json:"product_id"`
	ProductName  string                `json:"product_name"`
	Quantity     decimal.Decimal       `json:"quantity"`
	Unit         enums.ProductUnit     `json:"unit"`
	PricePerUnit decimal.Decimal       `json:"price_per_unit"`
	ReceivedQty  decimal.Decimal       `json:"received_qty"`
	Status       enums.OrderItemStatus `json:"status"`
}

// PurchaseOrderDTO is the API shape of a purchase order.
type PurchaseOrderDTO struct {
	ID               uuid.UUID         `json:"id"`
	OrderNumber      string            `json:"order_number"`
	SupplierID       uuid.UUID         `json:"supplier_id"`
	SupplierName     string            `json:"supplier_name"`
	Status           enums.OrderStatus `json:"status"`
	RequestIDs       []string          `json:"request_ids"`
	ExpectedDelivery *time.Time        `json:"expected_delivery,omitempty"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	Total            decimal.Decimal   `json:"total"`
	Notes            *string           `json:"notes,omitempty"`
	CreatedBy        uuid.UUID         `json:"created_by"`
	SentAt           *time.Time        `json:"sent_at,omitempty"`
	ConfirmedAt      *time.Time        `json:"confirmed_at,omitempty"`
	ReceivedAt       *time.Time        `json:"received_at,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
	Items            []OrderItemDTO    `json:"items"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// GenerateInput turns a comparison session's selections into draft orders.
type GenerateInput struct {
	RequestIDs       []uuid.UUID      `json:"request_ids" validate:"required,min=1"`
	Selections       []SelectionInput `json:"selections" validate:"required,min=1,dive"`
	Quantities       []QuantityInput  `json:"quantities" validate:"dive"`
	ExpectedDelivery *time.Time       `json:"expected_delivery"`
	CreatedBy        uuid.UUID
}

// SelectionInput pins one product to one supplier.
type SelectionInput struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
	SupplierID uuid.UUID `json:"supplier_id" validate:"required"`
}

// QuantityInput overrides the aggregated quantity for one product.
type QuantityInput struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// ReceiveItemInput records how much of one line actually arrived.
type ReceiveItemInput struct {
	ItemID   uuid.UUID       `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// ReceiveInput records a delivery against an order.
type ReceiveInput struct {
	Items   []ReceiveItemInput `json:"items" validate:"required,min=1,dive"`
	ActorID uuid.UUID
}

// ListFilter narrows order listings.
type ListFilter struct {
	SupplierID *uuid.UUID
	Statuses   []enums.OrderStatus
}

// FromModel maps a persisted order into its DTO.
func FromModel(order *models.PurchaseOrder) *PurchaseOrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			PricePerUnit: item.PricePerUnit,
			ReceivedQty:  item.ReceivedQty,
			Status:       item.Status,
		})
	}
	return &PurchaseOrderDTO{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		SupplierID:       order.SupplierID,
		SupplierName:     order.SupplierName,
		Status:           order.Status,
		RequestIDs:       order.RequestIDs,
		ExpectedDelivery: order.ExpectedDelivery,
		Subtotal:         order.Subtotal,
		Total:            order.Total,
		Notes:            order.Notes,
		CreatedBy:        order.CreatedBy,
		SentAt:           order.SentAt,
		ConfirmedAt:      order.ConfirmedAt,
		ReceivedAt:       order.ReceivedAt,
		CancelledAt:      order.CancelledAt,
		Items:            items,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}
