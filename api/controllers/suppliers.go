package controllers

import (
	"net/http"
	"strings"

	"github.com/procurechef/procurechef-backend/api/responses"
	"github.com/procurechef/procurechef-backend/api/validators"
	"github.com/procurechef/procurechef-backend/internal/suppliers"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
	"github.com/procurechef/procurechef-backend/pkg/logger"
)

// CreateSupplier registers a new vendor.
func CreateSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		var payload createSupplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.Create(r.Context(), suppliers.CreateSupplierDTO{
			Name:         strings.TrimSpace(payload.Name),
			ContactName:  payload.ContactName,
			Email:        payload.Email,
			Phone:        payload.Phone,
			Address:      payload.Address,
			PaymentTerms: payload.PaymentTerms,
			LeadTimeDays: payload.LeadTimeDays,
			Categories:   payload.Categories,
			Rating:       payload.Rating,
			Notes:        payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, supplier)
	}
}

// ListSuppliers returns vendors, optionally narrowed by category.
func ListSuppliers(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		activeOnly, err := validators.ParseQueryBool(r, "active_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := suppliers.ListFilter{
			Category:   validators.SanitizeString(r.URL.Query().Get("category"), 120),
			ActiveOnly: activeOnly,
		}

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetSupplier returns one vendor by id.
func GetSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, supplier)
	}
}

// UpdateSupplier mutates vendor fields.
func UpdateSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSupplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.Update(r.Context(), id, suppliers.UpdateSupplierInput{
			Name:         payload.Name,
			ContactName:  payload.ContactName,
			Email:        payload.Email,
			Phone:        payload.Phone,
			Address:      payload.Address,
			PaymentTerms: payload.PaymentTerms,
			LeadTimeDays: payload.LeadTimeDays,
			Categories:   payload.Categories,
			Rating:       payload.Rating,
			Notes:        payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, supplier)
	}
}

// DeactivateSupplier retires a vendor without deleting its history.
func DeactivateSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

// ReactivateSupplier restores a retired vendor.
func ReactivateSupplier(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Reactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "active"})
	}
}

type createSupplierRequest struct {
	Name         string   `json:"name" validate:"required"`
	ContactName  *string  `json:"contact_name"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone"`
	Address      *string  `json:"address"`
	PaymentTerms *string  `json:"payment_terms"`
	LeadTimeDays *int     `json:"lead_time_days" validate:"omitempty,min=0"`
	Categories   []string `json:"categories"`
	Rating       *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Notes        *string  `json:"notes"`
}

type updateSupplierRequest struct {
	Name         *string   `json:"name"`
	ContactName  *string   `json:"contact_name"`
	Email        *string   `json:"email" validate:"omitempty,email"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	PaymentTerms *string   `json:"payment_terms"`
	LeadTimeDays *int      `json:"lead_time_days" validate:"omitempty,min=0"`
	Categories   *[]string `json:"categories"`
	Rating       *float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Notes        *string   `json:"notes"`
}
