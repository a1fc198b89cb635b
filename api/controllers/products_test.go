package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/api/middleware"
	"github.com/procurechef/procurechef-backend/internal/inventory"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	"github.com/procurechef/procurechef-backend/pkg/pagination"
)

type testInventoryService struct {
	createFn func(ctx context.Context, dto inventory.CreateProductDTO) (*inventory.ProductDTO, error)
	adjustFn func(ctx context.Context, productID uuid.UUID, input inventory.AdjustStockInput) (*inventory.ProductDTO, error)
	listFn   func(ctx context.Context, filter inventory.ListFilter) ([]*inventory.ProductDTO, error)
}

func (s *testInventoryService) Create(ctx context.Context, dto inventory.CreateProductDTO) (*inventory.ProductDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, dto)
	}
	return &inventory.ProductDTO{}, nil
}

func (s *testInventoryService) GetByID(ctx context.Context, id uuid.UUID) (*inventory.ProductDTO, error) {
	return &inventory.ProductDTO{ID: id}, nil
}

func (s *testInventoryService) List(ctx context.Context, filter inventory.ListFilter) ([]*inventory.ProductDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *testInventoryService) ListLowStock(ctx context.Context) ([]*inventory.ProductDTO, error) {
	return nil, nil
}

func (s *testInventoryService) Update(ctx context.Context, id uuid.UUID, input inventory.UpdateProductInput) (*inventory.ProductDTO, error) {
	return &inventory.ProductDTO{ID: id}, nil
}

func (s *testInventoryService) AdjustStock(ctx context.Context, productID uuid.UUID, input inventory.AdjustStockInput) (*inventory.ProductDTO, error) {
	if s.adjustFn != nil {
		return s.adjustFn(ctx, productID, input)
	}
	return &inventory.ProductDTO{ID: productID}, nil
}

func (s *testInventoryService) Movements(ctx context.Context, productID uuid.UUID, params pagination.Params) (*inventory.MovementPage, error) {
	return &inventory.MovementPage{}, nil
}

func TestCreateProductParsesUnit(t *testing.T) {
	var got inventory.CreateProductDTO
	svc := &testInventoryService{
		createFn: func(ctx context.Context, dto inventory.CreateProductDTO) (*inventory.ProductDTO, error) {
			got = dto
			return &inventory.ProductDTO{SKU: dto.SKU}, nil
		},
	}

	body := strings.NewReader(`{"sku":"TOM-01","name":"Tomatoes","category":"produce","unit":"kg","min_stock":"5","max_stock":"40"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	resp := httptest.NewRecorder()
	CreateProduct(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.Unit != enums.ProductUnitKilogram {
		t.Fatalf("expected kg unit got %s", got.Unit)
	}
	if !got.MinStock.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected min stock %s", got.MinStock)
	}
}

func TestCreateProductRejectsUnknownUnit(t *testing.T) {
	body := strings.NewReader(`{"sku":"TOM-01","name":"Tomatoes","category":"produce","unit":"bushel"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	resp := httptest.NewRecorder()
	CreateProduct(&testInventoryService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdjustStockForwardsActorAndReason(t *testing.T) {
	productID := uuid.New()
	actorID := uuid.New()
	svc := &testInventoryService{
		adjustFn: func(ctx context.Context, pid uuid.UUID, input inventory.AdjustStockInput) (*inventory.ProductDTO, error) {
			if pid != productID {
				t.Fatalf("unexpected product %s", pid)
			}
			if input.ActorID != actorID {
				t.Fatalf("unexpected actor %s", input.ActorID)
			}
			if input.Reason != enums.StockMovementReasonConsumption {
				t.Fatalf("unexpected reason %s", input.Reason)
			}
			if !input.Delta.Equal(decimal.NewFromInt(-2)) {
				t.Fatalf("unexpected delta %s", input.Delta)
			}
			return &inventory.ProductDTO{ID: pid}, nil
		},
	}

	body := strings.NewReader(`{"delta":"-2","reason":"consumption"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID.String()+"/adjust-stock", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID.String()))
	req = addRouteParam(req, "id", productID.String())
	resp := httptest.NewRecorder()
	AdjustStock(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdjustStockRejectsUnknownReason(t *testing.T) {
	productID := uuid.New()
	body := strings.NewReader(`{"delta":"1","reason":"osmosis"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID.String()+"/adjust-stock", body)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	req = addRouteParam(req, "id", productID.String())
	resp := httptest.NewRecorder()
	AdjustStock(&testInventoryService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListProductsForwardsCategory(t *testing.T) {
	var got inventory.ListFilter
	svc := &testInventoryService{
		listFn: func(ctx context.Context, filter inventory.ListFilter) ([]*inventory.ProductDTO, error) {
			got = filter
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=produce&active_only=true", nil)
	resp := httptest.NewRecorder()
	ListProducts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got.Category != "produce" || !got.ActiveOnly {
		t.Fatalf("unexpected filter %+v", got)
	}
}
