package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/internal/comparison"
	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
)

type orderRepository interface {
	CreateBatch(ctx context.Context, orders []*models.PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	List(ctx context.Context, filter ListFilter) ([]models.PurchaseOrder, error)
	Update(ctx context.Context, order *models.PurchaseOrder) error
	SaveReceipt(ctx context.Context, order *models.PurchaseOrder, adjustments []StockAdjustment) error
}

type comparisonSource interface {
	Comparison(ctx context.Context, requestIDs []uuid.UUID, statuses []enums.QuoteStatus) ([]*comparison.ProductComparison, error)
}

type requestMarker interface {
	MarkOrdered(ctx context.Context, ids []uuid.UUID) error
}

type notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationType, title, body string) error
}

// Service exposes purchase order operations.
type Service interface {
	Generate(ctx context.Context, input GenerateInput) ([]*PurchaseOrderDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderDTO, error)
	List(ctx context.Context, filter ListFilter) ([]*PurchaseOrderDTO, error)
	Send(ctx context.Context, id uuid.UUID) (*PurchaseOrderDTO, error)
	Confirm(ctx context.Context, id uuid.UUID) (*PurchaseOrderDTO, error)
	Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderDTO, error)
	Receive(ctx context.Context, id uuid.UUID, input ReceiveInput) (*PurchaseOrderDTO, error)
}

// ServiceParams bundles the dependencies required to build an order service.
type ServiceParams struct {
	Repo          orderRepository
	Comparisons   comparisonSource
	Requests      requestMarker
	Notifications notifier
	NumberPrefix  string
	Now           func() time.Time
}

type service struct {
	repo        orderRepository
	comparisons comparisonSource
	requests    requestMarker
	notify      notifier
	prefix      string
	now         func() time.Time
}

// NewService validates the dependencies and builds the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Comparisons == nil {
		return nil, fmt.Errorf("comparison source required")
	}
	if params.Requests == nil {
		return nil, fmt.Errorf("request marker required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if params.NumberPrefix == "" {
		params.NumberPrefix = "PO"
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:        params.Repo,
		comparisons: params.Comparisons,
		requests:    params.Requests,
		notify:      params.Notifications,
		prefix:      params.NumberPrefix,
		now:         params.Now,
	}, nil
}

// Generate turns a comparison session into one draft order per selected
// supplier. Selections that do not resolve to a real priced offer are
// rejected outright, a zero-price line never reaches a supplier.
func (s *service) Generate(ctx context.Context, input GenerateInput) ([]*PurchaseOrderDTO, error) {
	if len(input.RequestIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one request is required")
	}
	if len(input.Selections) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one selection is required")
	}
	if input.CreatedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator is required")
	}

	comparisons, err := s.comparisons.Comparison(ctx, input.RequestIDs, nil)
	if err != nil {
		return nil, err
	}

	for _, override := range input.Quantities {
		if !override.Quantity.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity override must be positive")
		}
		if !comparison.ChangeQuantity(comparisons, override.ProductID, override.Quantity) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("product %s is not part of the comparison", override.ProductID))
		}
	}
	for _, selection := range input.Selections {
		if !comparison.SelectSupplier(comparisons, selection.ProductID, selection.SupplierID) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("product %s is not part of the comparison", selection.ProductID))
		}
	}

	bySupplier := make(map[uuid.UUID]*models.PurchaseOrder)
	supplierOrder := make([]uuid.UUID, 0)
	for _, entry := range comparisons {
		if entry.SelectedSupplierID == nil {
			continue
		}
		offer := entry.SelectedOffer()
		if offer == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("selected supplier has no offer for %s", entry.ProductName))
		}
		order, ok := bySupplier[offer.SupplierID]
		if !ok {
			order = &models.PurchaseOrder{
				ID:               uuid.New(),
				OrderNumber:      s.newOrderNumber(),
				SupplierID:       offer.SupplierID,
				SupplierName:     offer.SupplierName,
				Status:           enums.OrderStatusDraft,
				RequestIDs:       requestIDStrings(input.RequestIDs),
				ExpectedDelivery: input.ExpectedDelivery,
				CreatedBy:        input.CreatedBy,
			}
			bySupplier[offer.SupplierID] = order
			supplierOrder = append(supplierOrder, offer.SupplierID)
		}
		order.Items = append(order.Items, models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    entry.ProductID,
			ProductName:  entry.ProductName,
			Quantity:     entry.Quantity,
			Unit:         entry.Unit,
			PricePerUnit: offer.Price,
			Status:       enums.OrderItemStatusPending,
		})
	}
	if len(supplierOrder) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no selection resolved to an offer")
	}

	orders := make([]*models.PurchaseOrder, 0, len(supplierOrder))
	for _, supplierID := range supplierOrder {
		order := bySupplier[supplierID]
		subtotal := decimal.Zero
		for _, item := range order.Items {
			subtotal = subtotal.Add(item.PricePerUnit.Mul(item.Quantity))
		}
		order.Subtotal = subtotal.Round(2)
		order.Total = order.Subtotal
		orders = append(orders, order)
	}

	if err := s.repo.CreateBatch(ctx, orders); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create orders")
	}
	if err := s.requests.MarkOrdered(ctx, input.RequestIDs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark requests ordered")
	}

	dtos := make([]*PurchaseOrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, FromModel(order))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*PurchaseOrderDTO, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]*PurchaseOrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, FromModel(&orders[i]))
	}
	return dtos, nil
}

func (s *service) Send(ctx context.Context, id uuid.UUID) (*PurchaseOrderDTO, error) {
	return s.transition(ctx, id, enums.OrderStatusSent, enums.OrderStatusDraft)
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*PurchaseOrderDTO, error) {
	return s.transition(ctx, id, enums.OrderStatusConfirmed, enums.OrderStatusSent)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderDTO, error) {
	return s.transition(ctx, id, enums.OrderStatusCancelled,
		enums.OrderStatusDraft, enums.OrderStatusSent, enums.OrderStatusConfirmed)
}

// Receive records a delivery. Item statuses, the order status, product stock
// and the stock movement rows all move in one transaction.
func (s *service) Receive(ctx context.Context, id uuid.UUID, input ReceiveInput) (*PurchaseOrderDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one received item is required")
	}
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case enums.OrderStatusSent, enums.OrderStatusConfirmed, enums.OrderStatusPartiallyReceived:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot receive against a %s order", order.Status))
	}

	adjustments := make([]StockAdjustment, 0, len(input.Items))
	for _, received := range input.Items {
		if !received.Quantity.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "received quantity must be positive")
		}
		item := findItem(order.Items, received.ItemID)
		if item == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %s is not part of the order", received.ItemID))
		}
		item.ReceivedQty = item.ReceivedQty.Add(received.Quantity)
		if item.ReceivedQty.GreaterThanOrEqual(item.Quantity) {
			item.Status = enums.OrderItemStatusReceived
		} else {
			item.Status = enums.OrderItemStatusPartial
		}
		adjustments = append(adjustments, StockAdjustment{
			ProductID: item.ProductID,
			Delta:     received.Quantity,
			OrderID:   order.ID,
			ActorID:   input.ActorID,
		})
	}

	complete := true
	for _, item := range order.Items {
		if item.Status != enums.OrderItemStatusReceived {
			complete = false
			break
		}
	}
	if complete {
		order.Status = enums.OrderStatusReceived
		receivedAt := s.now().UTC()
		order.ReceivedAt = &receivedAt
	} else {
		order.Status = enums.OrderStatusPartiallyReceived
	}

	if err := s.repo.SaveReceipt(ctx, order, adjustments); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save receipt")
	}
	if complete {
		title := fmt.Sprintf("Order %s fully received", order.OrderNumber)
		body := fmt.Sprintf("All items from %s have been checked into stock.", order.SupplierName)
		_ = s.notify.Notify(ctx, order.CreatedBy, enums.NotificationTypeOrderReceived, title, body)
	}
	return FromModel(order), nil
}

func (s *service) transition(ctx context.Context, id uuid.UUID, target enums.OrderStatus, allowedFrom ...enums.OrderStatus) (*PurchaseOrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, status := range allowedFrom {
		if order.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move a %s order to %s", order.Status, target))
	}

	now := s.now().UTC()
	order.Status = target
	switch target {
	case enums.OrderStatusSent:
		order.SentAt = &now
	case enums.OrderStatusConfirmed:
		order.ConfirmedAt = &now
	case enums.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	return FromModel(order), nil
}

func (s *service) newOrderNumber() string {
	stamp := s.now().UTC().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", s.prefix, stamp, suffix)
}

func (s *service) loadOrder(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func findItem(items []models.OrderItem, id uuid.UUID) *models.OrderItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func requestIDStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
