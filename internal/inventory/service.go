package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/pkg/db"
	"github.com/procurechef/procurechef-backend/pkg/db/models"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
	"github.com/procurechef/procurechef-backend/pkg/pagination"
)

// ErrStockBelowZero signals an adjustment that would drive stock negative.
var ErrStockBelowZero = errors.New("stock cannot go below zero")

type productRepository interface {
	Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	ListBelowMin(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	AdjustStock(ctx context.Context, productID uuid.UUID, input AdjustStockInput) (*models.Product, error)
	ListMovements(ctx context.Context, productID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.StockMovement, string, error)
}

// Service exposes inventory operations.
type Service interface {
	Create(ctx context.Context, dto CreateProductDTO) (*ProductDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context, filter ListFilter) ([]*ProductDTO, error)
	ListLowStock(ctx context.Context) ([]*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, input AdjustStockInput) (*ProductDTO, error)
	Movements(ctx context.Context, productID uuid.UUID, params pagination.Params) (*MovementPage, error)
}

type service struct {
	repo productRepository
}

// NewService builds an inventory service with the provided repository.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, dto CreateProductDTO) (*ProductDTO, error) {
	if strings.TrimSpace(dto.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if strings.TrimSpace(dto.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !dto.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
	}
	if dto.CurrentStock.LessThan(decimal.Zero) || dto.MinStock.LessThan(decimal.Zero) || dto.MaxStock.LessThan(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
	}
	if dto.MaxStock.IsPositive() && dto.MaxStock.LessThan(dto.MinStock) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max stock cannot be below min stock")
	}

	product, err := s.repo.Create(ctx, dto)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*ProductDTO, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return mapProducts(products), nil
}

func (s *service) ListLowStock(ctx context.Context) ([]*ProductDTO, error) {
	products, err := s.repo.ListBelowMin(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock")
	}
	return mapProducts(products), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be blank")
		}
		product.Name = *input.Name
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Unit != nil {
		if !input.Unit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
		}
		product.Unit = *input.Unit
	}
	if input.MinStock != nil {
		if input.MinStock.LessThan(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min stock cannot be negative")
		}
		product.MinStock = *input.MinStock
	}
	if input.MaxStock != nil {
		if input.MaxStock.LessThan(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "max stock cannot be negative")
		}
		product.MaxStock = *input.MaxStock
	}
	if product.MaxStock.IsPositive() && product.MaxStock.LessThan(product.MinStock) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max stock cannot be below min stock")
	}
	if input.StorageLocation != nil {
		loc := *input.StorageLocation
		product.StorageLocation = &loc
	}
	if input.DefaultSupplierID != nil {
		id := *input.DefaultSupplierID
		product.DefaultSupplierID = &id
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) AdjustStock(ctx context.Context, productID uuid.UUID, input AdjustStockInput) (*ProductDTO, error) {
	if input.Delta.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be zero")
	}
	if !input.Reason.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement reason")
	}

	product, err := s.repo.AdjustStock(ctx, productID, input)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		case errors.Is(err, ErrStockBelowZero):
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "stock cannot go below zero")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust stock")
		}
	}
	return FromModel(product), nil
}

func (s *service) Movements(ctx context.Context, productID uuid.UUID, params pagination.Params) (*MovementPage, error) {
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	movements, next, err := s.repo.ListMovements(ctx, productID, params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movements")
	}
	return &MovementPage{Movements: movements, NextCursor: next}, nil
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func mapProducts(products []models.Product) []*ProductDTO {
	result := make([]*ProductDTO, 0, len(products))
	for i := range products {
		result = append(result, FromModel(&products[i]))
	}
	return result
}
