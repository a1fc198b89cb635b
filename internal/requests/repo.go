package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/internal/repo"
	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// Repository handles purchase request persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to purchase request operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create persists a new request together with its items.
func (r *Repository) Create(ctx context.Context, request *models.PurchaseRequest) error {
	if request == nil {
		return fmt.Errorf("request is required")
	}
	return r.DB(ctx).Create(request).Error
}

// FindByID loads a request with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseRequest, error) {
	var request models.PurchaseRequest
	err := r.DB(ctx).
		Preload("Items").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindByIDs loads the given requests with items, preserving none of the
// input order. Callers that care about ordering sort afterwards.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.PurchaseRequest, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var requests []models.PurchaseRequest
	err := r.DB(ctx).
		Preload("Items").
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// List returns requests matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.PurchaseRequest, error) {
	query := r.DB(ctx).Model(&models.PurchaseRequest{}).Preload("Items")
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}
	var requests []models.PurchaseRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Update saves the provided request. Items are not rewritten here.
func (r *Repository) Update(ctx context.Context, request *models.PurchaseRequest) error {
	if request == nil {
		return fmt.Errorf("request is required")
	}
	return r.DB(ctx).Omit("Items").Save(request).Error
}

// ReplaceItems swaps the request's items inside one transaction.
func (r *Repository) ReplaceItems(ctx context.Context, requestID uuid.UUID, items []models.RequestItem) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).Delete(&models.RequestItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].RequestID = requestID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// SetStatus updates the lifecycle column only.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status enums.RequestStatus) error {
	return r.DB(ctx).
		Model(&models.PurchaseRequest{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// MarkOrdered flips approved requests to ordered once purchase orders exist.
func (r *Repository) MarkOrdered(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB(ctx).
		Model(&models.PurchaseRequest{}).
		Where("id IN ? AND status = ?", ids, enums.RequestStatusApproved).
		UpdateColumn("status", enums.RequestStatusOrdered).Error
}

// RecordDecision stores the approver verdict fields alongside the status flip.
func (r *Repository) RecordDecision(ctx context.Context, id uuid.UUID, status enums.RequestStatus, decision DecisionInput, decidedAt time.Time) error {
	return r.DB(ctx).
		Model(&models.PurchaseRequest{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"status":         status,
			"approver_id":    decision.ApproverID,
			"decided_at":     decidedAt,
			"decision_notes": decision.Notes,
		}).Error
}
