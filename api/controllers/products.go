package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/api/middleware"
	"github.com/procurechef/procurechef-backend/api/responses"
	"github.com/procurechef/procurechef-backend/api/validators"
	"github.com/procurechef/procurechef-backend/internal/inventory"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
	"github.com/procurechef/procurechef-backend/pkg/logger"
	"github.com/procurechef/procurechef-backend/pkg/pagination"
)

// CreateProduct registers a new inventory product.
func CreateProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateDTO()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ListProducts returns the catalog, optionally narrowed by category.
func ListProducts(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		activeOnly, err := validators.ParseQueryBool(r, "active_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := inventory.ListFilter{
			Category:   validators.SanitizeString(r.URL.Query().Get("category"), 120),
			ActiveOnly: activeOnly,
		}

		products, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// GetProduct returns one product by id.
func GetProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListLowStockProducts returns every active product at or below its minimum.
func ListLowStockProducts(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		products, err := svc.ListLowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// UpdateProduct mutates catalog fields. Stock changes go through AdjustStock.
func UpdateProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdjustStock applies one manual stock delta and records the movement.
func AdjustStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reason, err := enums.ParseStockMovementReason(strings.TrimSpace(payload.Reason))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid reason"))
			return
		}

		product, err := svc.AdjustStock(r.Context(), id, inventory.AdjustStockInput{
			Delta:   payload.Delta,
			Reason:  reason,
			Notes:   payload.Notes,
			ActorID: actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListStockMovements returns the audit trail for one product.
func ListStockMovements(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Movements(r.Context(), id, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

type createProductRequest struct {
	SKU               string           `json:"sku" validate:"required"`
	Name              string           `json:"name" validate:"required"`
	Category          string           `json:"category" validate:"required"`
	Unit              string           `json:"unit" validate:"required"`
	CurrentStock      decimal.Decimal  `json:"current_stock"`
	MinStock          decimal.Decimal  `json:"min_stock"`
	MaxStock          decimal.Decimal  `json:"max_stock"`
	StorageLocation   *string          `json:"storage_location"`
	DefaultSupplierID *string          `json:"default_supplier_id"`
}

func (p createProductRequest) toCreateDTO() (inventory.CreateProductDTO, error) {
	unit, err := enums.ParseProductUnit(strings.TrimSpace(p.Unit))
	if err != nil {
		return inventory.CreateProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
	}

	var supplierID *uuid.UUID
	if p.DefaultSupplierID != nil && strings.TrimSpace(*p.DefaultSupplierID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(*p.DefaultSupplierID))
		if err != nil {
			return inventory.CreateProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid default supplier id")
		}
		supplierID = &parsed
	}

	return inventory.CreateProductDTO{
		SKU:               strings.TrimSpace(p.SKU),
		Name:              strings.TrimSpace(p.Name),
		Category:          strings.TrimSpace(p.Category),
		Unit:              unit,
		CurrentStock:      p.CurrentStock,
		MinStock:          p.MinStock,
		MaxStock:          p.MaxStock,
		StorageLocation:   p.StorageLocation,
		DefaultSupplierID: supplierID,
	}, nil
}

type updateProductRequest struct {
	Name              *string          `json:"name"`
	Category          *string          `json:"category"`
	Unit              *string          `json:"unit"`
	MinStock          *decimal.Decimal `json:"min_stock"`
	MaxStock          *decimal.Decimal `json:"max_stock"`
	StorageLocation   *string          `json:"storage_location"`
	DefaultSupplierID *string          `json:"default_supplier_id"`
}

func (p updateProductRequest) toUpdateInput() (inventory.UpdateProductInput, error) {
	input := inventory.UpdateProductInput{
		Name:            p.Name,
		Category:        p.Category,
		MinStock:        p.MinStock,
		MaxStock:        p.MaxStock,
		StorageLocation: p.StorageLocation,
	}

	if p.Unit != nil {
		unit, err := enums.ParseProductUnit(strings.TrimSpace(*p.Unit))
		if err != nil {
			return inventory.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
		}
		input.Unit = &unit
	}

	if p.DefaultSupplierID != nil && strings.TrimSpace(*p.DefaultSupplierID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(*p.DefaultSupplierID))
		if err != nil {
			return inventory.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid default supplier id")
		}
		input.DefaultSupplierID = &parsed
	}

	return input, nil
}

type adjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta" validate:"required"`
	Reason string          `json:"reason" validate:"required"`
	Notes  *string         `json:"notes"`
}

func actorFromContext(r *http.Request) (uuid.UUID, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return uid, nil
}
