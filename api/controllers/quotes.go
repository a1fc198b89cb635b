package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procurechef/procurechef-backend/api/responses"
	"github.com/procurechef/procurechef-backend/api/validators"
	"github.com/procurechef/procurechef-backend/internal/quotes"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
	"github.com/procurechef/procurechef-backend/pkg/logger"
)

// RecordQuote captures a supplier's response to an approved request.
func RecordQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		requestID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplierID, err := uuid.Parse(strings.TrimSpace(payload.SupplierID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier id"))
			return
		}

		quote, err := svc.Record(r.Context(), quotes.RecordQuoteInput{
			SupplierID: supplierID,
			RequestID:  requestID,
			ValidUntil: payload.ValidUntil,
			IsBlanket:  payload.IsBlanket,
			Notes:      payload.Notes,
			Items:      payload.Items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

// ListQuotes returns quotes, optionally narrowed by request, supplier, or status.
func ListQuotes(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		requestIDs, err := validators.ParseQueryUUIDs(r, "request_ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		statuses, err := parseQuoteStatuses(r.URL.Query().Get("statuses"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := quotes.ListFilter{RequestIDs: requestIDs, Statuses: statuses}
		if raw := strings.TrimSpace(r.URL.Query().Get("supplier_id")); raw != "" {
			supplierID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier id"))
				return
			}
			filter.SupplierID = &supplierID
		}

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetQuote returns one quote with its priced lines.
func GetQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// ApproveQuote accepts a received quote for ordering.
func ApproveQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteTransition(svc, logg, quotes.Service.Approve)
}

// RejectQuote declines a received quote.
func RejectQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteTransition(svc, logg, quotes.Service.Reject)
}

// CompareQuotes aggregates quotes across requests into per-product offer lists.
func CompareQuotes(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		requestIDs, err := validators.ParseQueryUUIDs(r, "request_ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		statuses, err := parseQuoteStatuses(r.URL.Query().Get("statuses"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Comparison(r.Context(), requestIDs, statuses)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type recordQuoteRequest struct {
	SupplierID string                   `json:"supplier_id" validate:"required"`
	ValidUntil *time.Time               `json:"valid_until"`
	IsBlanket  bool                     `json:"is_blanket"`
	Notes      *string                  `json:"notes"`
	Items      []quotes.RecordItemInput `json:"items" validate:"required,min=1,dive"`
}

func quoteTransition(
	svc quotes.Service,
	logg *logger.Logger,
	run func(quotes.Service, context.Context, uuid.UUID) (*quotes.SupplierQuoteDTO, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := run(svc, r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// parseQuoteStatuses returns nil for an absent parameter so the comparison
// default filter applies, and an empty non-nil slice for "all".
func parseQuoteStatuses(raw string) ([]enums.QuoteStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.EqualFold(raw, "all") {
		return []enums.QuoteStatus{}, nil
	}
	parts := strings.Split(raw, ",")
	statuses := make([]enums.QuoteStatus, 0, len(parts))
	for _, part := range parts {
		status, err := enums.ParseQuoteStatus(strings.TrimSpace(part))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
