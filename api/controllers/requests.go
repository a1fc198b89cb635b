package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/procurechef/procurechef-backend/api/responses"
	"github.com/procurechef/procurechef-backend/api/validators"
	"github.com/procurechef/procurechef-backend/internal/requests"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
	"github.com/procurechef/procurechef-backend/pkg/logger"
)

// CreateRequest opens a draft purchase request for the authenticated user.
func CreateRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "request service unavailable"))
			return
		}

		requesterID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload requests.CreateRequestInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Create(r.Context(), requesterID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// ListRequests returns purchase requests, optionally narrowed by status.
func ListRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "request service unavailable"))
			return
		}

		statuses, err := parseRequestStatuses(r.URL.Query().Get("statuses"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := requests.ListFilter{Statuses: statuses}
		if mine, err := validators.ParseQueryBool(r, "mine"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if mine {
			requesterID, err := actorFromContext(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			filter.RequesterID = &requesterID
		}

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetRequest returns one purchase request with its lines.
func GetRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "request service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

// UpdateRequest rewrites a draft request's header and lines.
func UpdateRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "request service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload requests.CreateRequestInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.UpdateDraft(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

// SubmitRequest moves a draft into the approval queue.
func SubmitRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return requestTransition(svc, logg, func(r *http.Request, svc requests.Service) (any, error) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		return svc.Submit(r.Context(), id)
	})
}

// ApproveRequest records an approval verdict on a pending request.
func ApproveRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return requestDecision(svc, logg, requests.Service.Approve)
}

// RejectRequest records a rejection verdict on a pending request.
func RejectRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return requestDecision(svc, logg, requests.Service.Reject)
}

// CancelRequest withdraws a draft or pending request.
func CancelRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return requestTransition(svc, logg, func(r *http.Request, svc requests.Service) (any, error) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		return svc.Cancel(r.Context(), id)
	})
}

type decisionRequest struct {
	Notes *string `json:"notes"`
}

func requestDecision(
	svc requests.Service,
	logg *logger.Logger,
	decide func(requests.Service, context.Context, uuid.UUID, requests.DecisionInput) (*requests.PurchaseRequestDTO, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "request service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		approverID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload decisionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := decide(svc, r.Context(), id, requests.DecisionInput{
			ApproverID: approverID,
			Notes:      payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

func requestTransition(svc requests.Service, logg *logger.Logger, run func(*http.Request, requests.Service) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "request service unavailable"))
			return
		}

		result, err := run(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseRequestStatuses(raw string) ([]enums.RequestStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	statuses := make([]enums.RequestStatus, 0, len(parts))
	for _, part := range parts {
		status, err := enums.ParseRequestStatus(strings.TrimSpace(part))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
