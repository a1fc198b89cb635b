package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/internal/comparison"
	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
)

type quoteRepository interface {
	Create(ctx context.Context, quote *models.SupplierQuote) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SupplierQuote, error)
	List(ctx context.Context, filter ListFilter) ([]models.SupplierQuote, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type requestSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseRequest, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.PurchaseRequest, error)
}

type supplierFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationType, title, body string) error
}

// Service exposes supplier quote operations, including the comparison rollup.
type Service interface {
	Record(ctx context.Context, input RecordQuoteInput) (*SupplierQuoteDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SupplierQuoteDTO, error)
	List(ctx context.Context, filter ListFilter) ([]*SupplierQuoteDTO, error)
	Approve(ctx context.Context, id uuid.UUID) (*SupplierQuoteDTO, error)
	Reject(ctx context.Context, id uuid.UUID) (*SupplierQuoteDTO, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	Comparison(ctx context.Context, requestIDs []uuid.UUID, statuses []enums.QuoteStatus) ([]*comparison.ProductComparison, error)
}

// ServiceParams bundles the dependencies required to build a quote service.
type ServiceParams struct {
	Repo          quoteRepository
	Requests      requestSource
	Suppliers     supplierFinder
	Products      productFinder
	Notifications notifier
	ValidityDays  int
	Now           func() time.Time
}

type service struct {
	repo         quoteRepository
	requests     requestSource
	suppliers    supplierFinder
	products     productFinder
	notify       notifier
	validityDays int
	now          func() time.Time
}

// NewService validates the dependencies and builds the quote service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if params.Requests == nil {
		return nil, fmt.Errorf("request source required")
	}
	if params.Suppliers == nil {
		return nil, fmt.Errorf("supplier finder required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if params.ValidityDays <= 0 {
		params.ValidityDays = 14
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:         params.Repo,
		requests:     params.Requests,
		suppliers:    params.Suppliers,
		products:     params.Products,
		notify:       params.Notifications,
		validityDays: params.ValidityDays,
		now:          params.Now,
	}, nil
}

func (s *service) Record(ctx context.Context, input RecordQuoteInput) (*SupplierQuoteDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote has no items")
	}

	supplier, err := s.suppliers.FindByID(ctx, input.SupplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	if !supplier.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "supplier is deactivated")
	}

	request, err := s.requests.FindByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load request")
	}
	if request.Status != enums.RequestStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("quotes can only be recorded against approved requests, request is %s", request.Status))
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	validUntil := input.ValidUntil
	if validUntil == nil && !input.IsBlanket {
		deadline := s.now().UTC().AddDate(0, 0, s.validityDays)
		validUntil = &deadline
	}
	quote := &models.SupplierQuote{
		ID:           uuid.New(),
		QuoteNumber:  s.newQuoteNumber(),
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		RequestID:    request.ID,
		Status:       enums.QuoteStatusReceived,
		ValidUntil:   validUntil,
		IsBlanket:    input.IsBlanket,
		Notes:        input.Notes,
		Items:        items,
	}
	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quote")
	}

	title := fmt.Sprintf("Quote %s received", quote.QuoteNumber)
	body := fmt.Sprintf("%s quoted %d item(s) for request %s.", supplier.Name, len(items), request.RequestNumber)
	_ = s.notify.Notify(ctx, request.RequesterID, enums.NotificationTypeQuoteReceived, title, body)

	return FromModel(quote), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*SupplierQuoteDTO, error) {
	quote, err := s.loadQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(quote), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*SupplierQuoteDTO, error) {
	quotes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	dtos := make([]*SupplierQuoteDTO, 0, len(quotes))
	for i := range quotes {
		dtos = append(dtos, FromModel(&quotes[i]))
	}
	return dtos, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) (*SupplierQuoteDTO, error) {
	return s.transition(ctx, id, enums.QuoteStatusApproved)
}

func (s *service) Reject(ctx context.Context, id uuid.UUID) (*SupplierQuoteDTO, error) {
	return s.transition(ctx, id, enums.QuoteStatusRejected)
}

// ExpireStale is the cron entry point for quote expiry.
func (s *service) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.repo.ExpireStale(ctx, now)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire quotes")
	}
	return expired, nil
}

// Comparison loads the given requests with every matching quote and folds
// them into the per-product price rollup. A nil statuses slice applies the
// comparison screen default; an explicit empty slice would include all
// statuses, so callers pass exactly what they mean.
func (s *service) Comparison(ctx context.Context, requestIDs []uuid.UUID, statuses []enums.QuoteStatus) ([]*comparison.ProductComparison, error) {
	if len(requestIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one request is required")
	}
	if statuses == nil {
		statuses = comparison.DefaultIncludeStatuses()
	}
	// The lookup deduplicates, so the existence check must compare against
	// distinct IDs or a repeated ID would read as a missing request.
	requestIDs = dedupeIDs(requestIDs)

	requests, err := s.requests.FindByIDs(ctx, requestIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load requests")
	}
	if len(requests) != len(requestIDs) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "one or more requests not found")
	}
	quotes, err := s.repo.List(ctx, ListFilter{RequestIDs: requestIDs})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotes")
	}
	return comparison.Aggregate(requests, quotes, comparison.Options{IncludeStatuses: statuses}), nil
}

func (s *service) transition(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) (*SupplierQuoteDTO, error) {
	quote, err := s.loadQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status != enums.QuoteStatusReceived {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move a %s quote to %s", quote.Status, status))
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
	}
	quote.Status = status
	return FromModel(quote), nil
}

func (s *service) buildItems(ctx context.Context, inputs []RecordItemInput) ([]models.QuoteItem, error) {
	items := make([]models.QuoteItem, 0, len(inputs))
	for _, input := range inputs {
		if !input.Quantity.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if input.PricePerUnit.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
		}
		if input.MinimumOrderQty != nil && !input.MinimumOrderQty.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum order quantity must be positive")
		}
		product, err := s.products.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("product %s not found", input.ProductID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		inStock := true
		if input.InStock != nil {
			inStock = *input.InStock
		}
		items = append(items, models.QuoteItem{
			ID:                  uuid.New(),
			ProductID:           product.ID,
			ProductName:         product.Name,
			Quantity:            input.Quantity,
			Unit:                product.Unit,
			PricePerUnit:        input.PricePerUnit,
			InStock:             inStock,
			SupplierProductCode: input.SupplierProductCode,
			MinimumOrderQty:     input.MinimumOrderQty,
			PackageConversion:   input.PackageConversion,
		})
	}
	return items, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *service) newQuoteNumber() string {
	stamp := s.now().UTC().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("QT-%s-%s", stamp, suffix)
}

func (s *service) loadQuote(ctx context.Context, id uuid.UUID) (*models.SupplierQuote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return quote, nil
}
