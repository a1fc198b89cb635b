package quotes

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

// Repository handles supplier quote persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to supplier quote operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create persists a new quote together with its items.
func (r *Repository) Create(ctx context.Context, quote *models.SupplierQuote) error {
	if quote == nil {
		return fmt.Errorf("quote is required")
	}
	return r.DB(ctx).Create(quote).Error
}

// FindByID loads a quote with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SupplierQuote, error) {
	var quote models.SupplierQuote
	err := r.DB(ctx).
		Preload("Items").
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List returns quotes matching the filter, oldest first so comparison
// aggregation sees them in arrival order.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.SupplierQuote, error) {
	query := r.DB(ctx).Model(&models.SupplierQuote{}).Preload("Items")
	if len(filter.RequestIDs) > 0 {
		query = query.Where("request_id IN ?", filter.RequestIDs)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	var quotes []models.SupplierQuote
	if err := query.Order("created_at ASC").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// SetStatus updates the lifecycle column only.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error {
	return r.DB(ctx).
		Model(&models.SupplierQuote{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// ExpireStale flips live quotes whose validity window has passed. Blanket
// quotes never expire this way.
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result := r.DB(ctx).
		Model(&models.SupplierQuote{}).
		Where("status IN ?", []enums.QuoteStatus{enums.QuoteStatusSent, enums.QuoteStatusReceived}).
		Where("is_blanket = ?", false).
		Where("valid_until IS NOT NULL AND valid_until < ?", now).
		UpdateColumn("status", enums.QuoteStatusExpired)
	return result.RowsAffected, result.Error
}
