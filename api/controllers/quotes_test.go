package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/procurechef/procurechef-backend/internal/comparison"
	"github.com/procurechef/procurechef-backend/internal/quotes"
	"github.com/procurechef/procurechef-backend/pkg/enums"
)

type testQuotesService struct {
	recordFn     func(ctx context.Context, input quotes.RecordQuoteInput) (*quotes.SupplierQuoteDTO, error)
	comparisonFn func(ctx context.Context, requestIDs []uuid.UUID, statuses []enums.QuoteStatus) ([]*comparison.ProductComparison, error)
}

func (s *testQuotesService) Record(ctx context.Context, input quotes.RecordQuoteInput) (*quotes.SupplierQuoteDTO, error) {
	if s.recordFn != nil {
		return s.recordFn(ctx, input)
	}
	return &quotes.SupplierQuoteDTO{}, nil
}

func (s *testQuotesService) GetByID(ctx context.Context, id uuid.UUID) (*quotes.SupplierQuoteDTO, error) {
	return &quotes.SupplierQuoteDTO{ID: id}, nil
}

func (s *testQuotesService) List(ctx context.Context, filter quotes.ListFilter) ([]*quotes.SupplierQuoteDTO, error) {
	return nil, nil
}

func (s *testQuotesService) Approve(ctx context.Context, id uuid.UUID) (*quotes.SupplierQuoteDTO, error) {
	return &quotes.SupplierQuoteDTO{ID: id}, nil
}

func (s *testQuotesService) Reject(ctx context.Context, id uuid.UUID) (*quotes.SupplierQuoteDTO, error) {
	return &quotes.SupplierQuoteDTO{ID: id}, nil
}

func (s *testQuotesService) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (s *testQuotesService) Comparison(ctx context.Context, requestIDs []uuid.UUID, statuses []enums.QuoteStatus) ([]*comparison.ProductComparison, error) {
	if s.comparisonFn != nil {
		return s.comparisonFn(ctx, requestIDs, statuses)
	}
	return nil, nil
}

func TestRecordQuoteUsesPathRequestID(t *testing.T) {
	requestID := uuid.New()
	supplierID := uuid.New()
	var got quotes.RecordQuoteInput
	svc := &testQuotesService{
		recordFn: func(ctx context.Context, input quotes.RecordQuoteInput) (*quotes.SupplierQuoteDTO, error) {
			got = input
			return &quotes.SupplierQuoteDTO{RequestID: input.RequestID}, nil
		},
	}

	body := strings.NewReader(`{
		"supplier_id": "` + supplierID.String() + `",
		"items": [{"product_id":"` + uuid.NewString() + `","quantity":"5","price_per_unit":"2.50"}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/"+requestID.String()+"/quotes", body)
	req = addRouteParam(req, "id", requestID.String())
	resp := httptest.NewRecorder()
	RecordQuote(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.RequestID != requestID {
		t.Fatalf("expected request %s got %s", requestID, got.RequestID)
	}
	if got.SupplierID != supplierID {
		t.Fatalf("expected supplier %s got %s", supplierID, got.SupplierID)
	}
}

func TestCompareQuotesStatusFilter(t *testing.T) {
	requestID := uuid.New()
	tests := []struct {
		name  string
		query string
		want  []enums.QuoteStatus
	}{
		{"absent defaults to nil", "", nil},
		{"all yields empty slice", "&statuses=all", []enums.QuoteStatus{}},
		{"explicit list", "&statuses=received,approved", []enums.QuoteStatus{enums.QuoteStatusReceived, enums.QuoteStatusApproved}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotStatuses []enums.QuoteStatus
			gotCalled := false
			svc := &testQuotesService{
				comparisonFn: func(ctx context.Context, ids []uuid.UUID, statuses []enums.QuoteStatus) ([]*comparison.ProductComparison, error) {
					gotCalled = true
					gotStatuses = statuses
					return nil, nil
				},
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/comparison?request_ids="+requestID.String()+tt.query, nil)
			resp := httptest.NewRecorder()
			CompareQuotes(svc, testLogger())(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200 got %d", resp.Code)
			}
			if !gotCalled {
				t.Fatal("expected comparison called")
			}
			if tt.want == nil && gotStatuses != nil {
				t.Fatalf("expected nil statuses got %v", gotStatuses)
			}
			if tt.want != nil {
				if gotStatuses == nil {
					t.Fatal("expected non-nil statuses")
				}
				if len(gotStatuses) != len(tt.want) {
					t.Fatalf("expected %v got %v", tt.want, gotStatuses)
				}
				for i := range tt.want {
					if gotStatuses[i] != tt.want[i] {
						t.Fatalf("expected %v got %v", tt.want, gotStatuses)
					}
				}
			}
		})
	}
}

func TestCompareQuotesRejectsBadStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/comparison?request_ids="+uuid.NewString()+"&statuses=bogus", nil)
	resp := httptest.NewRecorder()
	CompareQuotes(&testQuotesService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
