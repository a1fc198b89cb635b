package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/internal/repo"
	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/pagination"
)

// ListFilter narrows the product listing.
type ListFilter struct {
	Category   string
	ActiveOnly bool
}

// Repository handles product and stock movement persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to inventory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create persists a new product row.
func (r *Repository) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	product := dto.ToModel()
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products matching the filter, ordered by name.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.DB(ctx).Model(&models.Product{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	var products []models.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListBelowMin returns active products whose stock has fallen below their
// minimum threshold, the feed for restock requests.
func (r *Repository) ListBelowMin(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB(ctx).
		Where("is_active = ? AND current_stock < min_stock", true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update saves the provided product.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.DB(ctx).Save(product).Error
}

// AdjustStock applies a stock delta and records the movement in one
// transaction. The resulting stock may not go negative.
func (r *Repository) AdjustStock(ctx context.Context, productID uuid.UUID, input AdjustStockInput) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return err
		}

		next := product.CurrentStock.Add(input.Delta)
		if next.LessThan(decimal.Zero) {
			return ErrStockBelowZero
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("current_stock", next).Error; err != nil {
			return err
		}
		product.CurrentStock = next

		movement := &models.StockMovement{
			ID:        uuid.New(),
			ProductID: productID,
			Delta:     input.Delta,
			Reason:    input.Reason,
			OrderID:   input.OrderID,
			Notes:     input.Notes,
			CreatedBy: input.ActorID,
		}
		return tx.Create(movement).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListMovements returns one page of a product's movement history, newest
// first, together with the cursor for the next page (empty when exhausted).
func (r *Repository) ListMovements(ctx context.Context, productID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.StockMovement, string, error) {
	limit = pagination.NormalizeLimit(limit)

	query := r.DB(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit + 1)
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var movements []models.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[limit-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return movements, next, nil
}
