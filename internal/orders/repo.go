package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/internal/repo"
	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// openStatuses are the order states that still tie up a supplier.
var openStatuses = []enums.OrderStatus{
	enums.OrderStatusDraft,
	enums.OrderStatusSent,
	enums.OrderStatusConfirmed,
	enums.OrderStatusPartiallyReceived,
}

// Repository handles purchase order persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to purchase order operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// CreateBatch persists the generated orders and their items in one
// transaction so a comparison session never yields a partial set.
func (r *Repository) CreateBatch(ctx context.Context, orders []*models.PurchaseOrder) error {
	if len(orders) == 0 {
		return fmt.Errorf("at least one order is required")
	}
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			if err := tx.Create(order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID loads an order with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := r.DB(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.PurchaseOrder, error) {
	query := r.DB(ctx).Model(&models.PurchaseOrder{}).Preload("Items")
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	var orders []models.PurchaseOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update saves the order header and any loaded items.
func (r *Repository) Update(ctx context.Context, order *models.PurchaseOrder) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return r.DB(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// StockAdjustment is the stock side effect of receiving one order line.
type StockAdjustment struct {
	ProductID uuid.UUID
	Delta     decimal.Decimal
	OrderID   uuid.UUID
	ActorID   uuid.UUID
}

// SaveReceipt persists a delivery: the order with its item progress, the
// product stock increments and the movement audit rows, all or nothing.
func (r *Repository) SaveReceipt(ctx context.Context, order *models.PurchaseOrder, adjustments []StockAdjustment) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error; err != nil {
			return err
		}
		for _, adj := range adjustments {
			result := tx.Model(&models.Product{}).
				Where("id = ?", adj.ProductID).
				UpdateColumn("current_stock", gorm.Expr("current_stock + ?", adj.Delta))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("product %s not found", adj.ProductID)
			}
			orderID := adj.OrderID
			movement := models.StockMovement{
				ID:        uuid.New(),
				ProductID: adj.ProductID,
				Delta:     adj.Delta,
				Reason:    enums.StockMovementReasonReceived,
				OrderID:   &orderID,
				CreatedBy: adj.ActorID,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CountOpenBySupplier reports how many live orders reference the supplier.
// The supplier service uses this to block deactivation.
func (r *Repository) CountOpenBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.PurchaseOrder{}).
		Where("supplier_id = ? AND status IN ?", supplierID, openStatuses).
		Count(&count).Error
	return count, err
}
