package requests

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// RequestItemDTO is one requested line as exposed over the API.
type RequestItemDTO struct {
	ID           uuid.UUID         `json:"id"`
	ProductID    uuid.UUID         `json:"product_id"`
	ProductName  string            `json:"product_name"`
	Category     string            `json:"category"`
	Quantity     decimal.Decimal   `json:"quantity"`
	Unit         enums.ProductUnit `json:"unit"`
	PricePerUnit decimal.Decimal   `json:"price_per_unit"`
}

// PurchaseRequestDTO is the API shape of a purchase request.
type PurchaseRequestDTO struct {
	ID            uuid.UUID             `json:"id"`
	RequestNumber string                `json:"request_number"`
	Title         string                `json:"title"`
	Status        enums.RequestStatus   `json:"status"`
	Priority      enums.RequestPriority `json:"priority"`
	NeededBy      *time.Time            `json:"needed_by,omitempty"`
	RequesterID   uuid.UUID             `json:"requester_id"`
	ApproverID    *uuid.UUID            `json:"approver_id,omitempty"`
	DecidedAt     *time.Time            `json:"decided_at,omitempty"`
	DecisionNotes *string               `json:"decision_notes,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	Items         []RequestItemDTO      `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// CreateItemInput is one line of a new or edited request.
type CreateItemInput struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateRequestInput carries everything needed to open a draft request.
type CreateRequestInput struct {
	Title    string                `json:"title" validate:"required"`
	Priority enums.RequestPriority `json:"priority"`
	NeededBy *time.Time            `json:"needed_by"`
	Notes    *string               `json:"notes"`
	Items    []CreateItemInput     `json:"items" validate:"required,min=1,dive"`
}

// DecisionInput carries the approver's verdict on a pending request.
type DecisionInput struct {
	ApproverID uuid.UUID
	Notes      *string
}

// ListFilter narrows request listings.
type ListFilter struct {
	Statuses    []enums.RequestStatus
	RequesterID *uuid.UUID
}

// FromModel maps a persisted request into its DTO.
func FromModel(request *models.PurchaseRequest) *PurchaseRequestDTO {
	items := make([]RequestItemDTO, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, RequestItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Category:     item.Category,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			PricePerUnit: item.PricePerUnit,
		})
	}
	return &PurchaseRequestDTO{
		ID:            request.ID,
		RequestNumber: request.RequestNumber,
		Title:         request.Title,
		Status:        request.Status,
		Priority:      request.Priority,
		NeededBy:      request.NeededBy,
		RequesterID:   request.RequesterID,
		ApproverID:    request.ApproverID,
		DecidedAt:     request.DecidedAt,
		DecisionNotes: request.DecisionNotes,
		Notes:         request.Notes,
		Items:         items,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}
}
