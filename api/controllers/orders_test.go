package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/procurechef/procurechef-backend/api/middleware"
	"github.com/procurechef/procurechef-backend/internal/orders"
)

type testOrdersService struct {
	generateFn func(ctx context.Context, input orders.GenerateInput) ([]*orders.PurchaseOrderDTO, error)
	receiveFn  func(ctx context.Context, id uuid.UUID, input orders.ReceiveInput) (*orders.PurchaseOrderDTO, error)
	sendFn     func(ctx context.Context, id uuid.UUID) (*orders.PurchaseOrderDTO, error)
}

func (s *testOrdersService) Generate(ctx context.Context, input orders.GenerateInput) ([]*orders.PurchaseOrderDTO, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, input)
	}
	return nil, nil
}

func (s *testOrdersService) GetByID(ctx context.Context, id uuid.UUID) (*orders.PurchaseOrderDTO, error) {
	return &orders.PurchaseOrderDTO{ID: id}, nil
}

func (s *testOrdersService) List(ctx context.Context, filter orders.ListFilter) ([]*orders.PurchaseOrderDTO, error) {
	return nil, nil
}

func (s *testOrdersService) Send(ctx context.Context, id uuid.UUID) (*orders.PurchaseOrderDTO, error) {
	if s.sendFn != nil {
		return s.sendFn(ctx, id)
	}
	return &orders.PurchaseOrderDTO{ID: id}, nil
}

func (s *testOrdersService) Confirm(ctx context.Context, id uuid.UUID) (*orders.PurchaseOrderDTO, error) {
	return &orders.PurchaseOrderDTO{ID: id}, nil
}

func (s *testOrdersService) Cancel(ctx context.Context, id uuid.UUID) (*orders.PurchaseOrderDTO, error) {
	return &orders.PurchaseOrderDTO{ID: id}, nil
}

func (s *testOrdersService) Receive(ctx context.Context, id uuid.UUID, input orders.ReceiveInput) (*orders.PurchaseOrderDTO, error) {
	if s.receiveFn != nil {
		return s.receiveFn(ctx, id, input)
	}
	return &orders.PurchaseOrderDTO{ID: id}, nil
}

func TestGenerateOrdersForwardsCreator(t *testing.T) {
	creatorID := uuid.New()
	productID := uuid.New()
	supplierID := uuid.New()
	requestID := uuid.New()
	var got orders.GenerateInput
	svc := &testOrdersService{
		generateFn: func(ctx context.Context, input orders.GenerateInput) ([]*orders.PurchaseOrderDTO, error) {
			got = input
			return []*orders.PurchaseOrderDTO{{OrderNumber: "PO-20260314-ABCDEF"}}, nil
		},
	}

	body := strings.NewReader(`{
		"request_ids": ["` + requestID.String() + `"],
		"selections": [{"product_id":"` + productID.String() + `","supplier_id":"` + supplierID.String() + `"}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/generate", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), creatorID.String()))
	resp := httptest.NewRecorder()
	GenerateOrders(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.CreatedBy != creatorID {
		t.Fatalf("expected creator %s got %s", creatorID, got.CreatedBy)
	}
	if len(got.RequestIDs) != 1 || got.RequestIDs[0] != requestID {
		t.Fatalf("unexpected request ids %v", got.RequestIDs)
	}
	if len(got.Selections) != 1 || got.Selections[0].SupplierID != supplierID {
		t.Fatalf("unexpected selections %v", got.Selections)
	}
}

func TestGenerateOrdersRejectsEmptySelections(t *testing.T) {
	body := strings.NewReader(`{"request_ids":["` + uuid.NewString() + `"],"selections":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/generate", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	GenerateOrders(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestReceiveOrderForwardsActor(t *testing.T) {
	orderID := uuid.New()
	actorID := uuid.New()
	itemID := uuid.New()
	svc := &testOrdersService{
		receiveFn: func(ctx context.Context, id uuid.UUID, input orders.ReceiveInput) (*orders.PurchaseOrderDTO, error) {
			if id != orderID {
				t.Fatalf("unexpected order %s", id)
			}
			if input.ActorID != actorID {
				t.Fatalf("unexpected actor %s", input.ActorID)
			}
			if len(input.Items) != 1 || input.Items[0].ItemID != itemID {
				t.Fatalf("unexpected items %v", input.Items)
			}
			return &orders.PurchaseOrderDTO{ID: id}, nil
		},
	}

	body := strings.NewReader(`{"items":[{"item_id":"` + itemID.String() + `","quantity":"3"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/receive", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID.String()))
	req = addRouteParam(req, "id", orderID.String())
	resp := httptest.NewRecorder()
	ReceiveOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSendOrderInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/nope/send", nil)
	req = addRouteParam(req, "id", "nope")
	resp := httptest.NewRecorder()
	SendOrder(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListOrdersRejectsBadStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?statuses=bogus", nil)
	resp := httptest.NewRecorder()
	ListOrders(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrderPDFSetsHeaders(t *testing.T) {
	orderID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/pdf", nil)
	req = addRouteParam(req, "id", orderID.String())
	resp := httptest.NewRecorder()
	OrderPDF(&testOrdersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if !strings.HasPrefix(resp.Body.String(), "%PDF-") {
		t.Fatal("expected PDF payload")
	}
}
