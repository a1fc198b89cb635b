package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/procurechef/procurechef-backend/api/middleware"
	"github.com/procurechef/procurechef-backend/internal/requests"
)

type testRequestsService struct {
	createFn  func(ctx context.Context, requesterID uuid.UUID, input requests.CreateRequestInput) (*requests.PurchaseRequestDTO, error)
	approveFn func(ctx context.Context, id uuid.UUID, decision requests.DecisionInput) (*requests.PurchaseRequestDTO, error)
	submitFn  func(ctx context.Context, id uuid.UUID) (*requests.PurchaseRequestDTO, error)
}

func (s *testRequestsService) Create(ctx context.Context, requesterID uuid.UUID, input requests.CreateRequestInput) (*requests.PurchaseRequestDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, requesterID, input)
	}
	return &requests.PurchaseRequestDTO{}, nil
}

func (s *testRequestsService) GetByID(ctx context.Context, id uuid.UUID) (*requests.PurchaseRequestDTO, error) {
	return &requests.PurchaseRequestDTO{ID: id}, nil
}

func (s *testRequestsService) List(ctx context.Context, filter requests.ListFilter) ([]*requests.PurchaseRequestDTO, error) {
	return nil, nil
}

func (s *testRequestsService) UpdateDraft(ctx context.Context, id uuid.UUID, input requests.CreateRequestInput) (*requests.PurchaseRequestDTO, error) {
	return &requests.PurchaseRequestDTO{ID: id}, nil
}

func (s *testRequestsService) Submit(ctx context.Context, id uuid.UUID) (*requests.PurchaseRequestDTO, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, id)
	}
	return &requests.PurchaseRequestDTO{ID: id}, nil
}

func (s *testRequestsService) Approve(ctx context.Context, id uuid.UUID, decision requests.DecisionInput) (*requests.PurchaseRequestDTO, error) {
	if s.approveFn != nil {
		return s.approveFn(ctx, id, decision)
	}
	return &requests.PurchaseRequestDTO{ID: id}, nil
}

func (s *testRequestsService) Reject(ctx context.Context, id uuid.UUID, decision requests.DecisionInput) (*requests.PurchaseRequestDTO, error) {
	return &requests.PurchaseRequestDTO{ID: id}, nil
}

func (s *testRequestsService) Cancel(ctx context.Context, id uuid.UUID) (*requests.PurchaseRequestDTO, error) {
	return &requests.PurchaseRequestDTO{ID: id}, nil
}

func TestCreateRequestRequiresUser(t *testing.T) {
	body := strings.NewReader(`{"title":"Weekly produce","items":[{"product_id":"` + uuid.NewString() + `","quantity":"5"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", body)
	resp := httptest.NewRecorder()
	CreateRequest(&testRequestsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCreateRequestForwardsRequester(t *testing.T) {
	requesterID := uuid.New()
	var gotRequester uuid.UUID
	svc := &testRequestsService{
		createFn: func(ctx context.Context, rid uuid.UUID, input requests.CreateRequestInput) (*requests.PurchaseRequestDTO, error) {
			gotRequester = rid
			if input.Title != "Weekly produce" {
				t.Fatalf("unexpected title %q", input.Title)
			}
			if len(input.Items) != 1 {
				t.Fatalf("expected 1 item got %d", len(input.Items))
			}
			return &requests.PurchaseRequestDTO{Title: input.Title}, nil
		},
	}

	body := strings.NewReader(`{"title":"Weekly produce","items":[{"product_id":"` + uuid.NewString() + `","quantity":"5"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), requesterID.String()))
	resp := httptest.NewRecorder()
	CreateRequest(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if gotRequester != requesterID {
		t.Fatalf("expected requester %s got %s", requesterID, gotRequester)
	}
}

func TestCreateRequestRejectsMissingItems(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader(`{"title":"No lines"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	CreateRequest(&testRequestsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestApproveRequestForwardsApprover(t *testing.T) {
	requestID := uuid.New()
	approverID := uuid.New()
	svc := &testRequestsService{
		approveFn: func(ctx context.Context, id uuid.UUID, decision requests.DecisionInput) (*requests.PurchaseRequestDTO, error) {
			if id != requestID {
				t.Fatalf("unexpected request %s", id)
			}
			if decision.ApproverID != approverID {
				t.Fatalf("unexpected approver %s", decision.ApproverID)
			}
			if decision.Notes == nil || *decision.Notes != "looks fine" {
				t.Fatal("expected decision notes forwarded")
			}
			return &requests.PurchaseRequestDTO{ID: id}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/"+requestID.String()+"/approve", strings.NewReader(`{"notes":"looks fine"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), approverID.String()))
	req = addRouteParam(req, "id", requestID.String())
	resp := httptest.NewRecorder()
	ApproveRequest(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestSubmitRequestInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/nope/submit", nil)
	req = addRouteParam(req, "id", "nope")
	resp := httptest.NewRecorder()
	SubmitRequest(&testRequestsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
