package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/procurechef/procurechef-backend/api/responses"
	"github.com/procurechef/procurechef-backend/api/validators"
	"github.com/procurechef/procurechef-backend/internal/export"
	"github.com/procurechef/procurechef-backend/internal/inventory"
	"github.com/procurechef/procurechef-backend/internal/quotes"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
	"github.com/procurechef/procurechef-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportComparisonXLSX streams the quote comparison matrix as a workbook.
func ExportComparisonXLSX(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
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

		comparisons, err := svc.Comparison(r.Context(), requestIDs, statuses)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", exportFilename("comparison"))
		if err := export.WriteComparisonXLSX(w, comparisons); err != nil && logg != nil {
			logg.Error(r.Context(), "export.comparison.write", err)
		}
	}
}

// ExportInventoryXLSX streams the current catalog with stock levels as a workbook.
func ExportInventoryXLSX(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		products, err := svc.List(r.Context(), inventory.ListFilter{ActiveOnly: true})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", exportFilename("inventory"))
		if err := export.WriteInventoryXLSX(w, products); err != nil && logg != nil {
			logg.Error(r.Context(), "export.inventory.write", err)
		}
	}
}

func exportFilename(prefix string) string {
	return fmt.Sprintf("attachment; filename=%s-%s.xlsx", prefix, time.Now().UTC().Format("20060102"))
}
