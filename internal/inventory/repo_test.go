package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	"github.com/procurechef/procurechef-backend/pkg/pagination"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  unit TEXT NOT NULL,
  current_stock NUMERIC NOT NULL DEFAULT 0,
  min_stock NUMERIC NOT NULL DEFAULT 0,
  max_stock NUMERIC NOT NULL DEFAULT 0,
  storage_location TEXT,
  default_supplier_id TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	movements := `
CREATE TABLE IF NOT EXISTS stock_movements (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  delta NUMERIC NOT NULL,
  reason TEXT NOT NULL,
  order_id TEXT,
  notes TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(movements).Error)

	// The shared-cache DB survives between tests in this package.
	require.NoError(t, db.Exec(`DELETE FROM stock_movements`).Error)
	require.NoError(t, db.Exec(`DELETE FROM products`).Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, sku string, current, min string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:           uuid.New(),
		SKU:          sku,
		Name:         "Product " + sku,
		Category:     "dry-goods",
		Unit:         enums.ProductUnitKilogram,
		CurrentStock: decimal.RequireFromString(current),
		MinStock:     decimal.RequireFromString(min),
		IsActive:     true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryAdjustStockRecordsMovement(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	actor := uuid.New()

	product := newProduct(t, db, "FLR-001", "10", "5")

	updated, err := repo.AdjustStock(context.Background(), product.ID, AdjustStockInput{
		Delta:   decimal.RequireFromString("-4"),
		Reason:  enums.StockMovementReasonConsumption,
		ActorID: actor,
	})
	require.NoError(t, err)
	assert.True(t, updated.CurrentStock.Equal(decimal.RequireFromString("6")))

	movements, _, err := repo.ListMovements(context.Background(), product.ID, 0, nil)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, enums.StockMovementReasonConsumption, movements[0].Reason)
	assert.Equal(t, actor, movements[0].CreatedBy)
	assert.True(t, movements[0].Delta.Equal(decimal.RequireFromString("-4")))
}

func TestRepositoryAdjustStockRejectsNegativeResult(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)

	product := newProduct(t, db, "FLR-002", "3", "5")

	_, err := repo.AdjustStock(context.Background(), product.ID, AdjustStockInput{
		Delta:   decimal.RequireFromString("-10"),
		Reason:  enums.StockMovementReasonAdjustment,
		ActorID: uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStockBelowZero))

	// The failed adjustment must leave no movement row behind.
	movements, _, err := repo.ListMovements(context.Background(), product.ID, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, movements)

	reloaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.CurrentStock.Equal(decimal.RequireFromString("3")))
}

func TestRepositoryListBelowMin(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)

	low := newProduct(t, db, "LOW-001", "2", "5")
	newProduct(t, db, "OK-001", "9", "5")

	inactive := newProduct(t, db, "LOW-002", "1", "5")
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", inactive.ID).UpdateColumn("is_active", false).Error)

	products, err := repo.ListBelowMin(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}

func TestRepositoryListMovementsPaginates(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)

	product := newProduct(t, db, "FLR-PAGE", "100", "5")
	actor := uuid.New()
	for i := 0; i < 3; i++ {
		_, err := repo.AdjustStock(context.Background(), product.ID, AdjustStockInput{
			Delta:   decimal.RequireFromString("-1"),
			Reason:  enums.StockMovementReasonConsumption,
			ActorID: actor,
		})
		require.NoError(t, err)
	}

	first, token, err := repo.ListMovements(context.Background(), product.ID, 2, nil)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, token)

	cursor, err := pagination.ParseCursor(token)
	require.NoError(t, err)

	rest, next, err := repo.ListMovements(context.Background(), product.ID, 2, cursor)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Empty(t, next)

	seen := map[uuid.UUID]bool{}
	for _, movement := range append(first, rest...) {
		assert.False(t, seen[movement.ID], "movement %s returned twice", movement.ID)
		seen[movement.ID] = true
	}
}
