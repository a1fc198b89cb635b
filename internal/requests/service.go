package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
)

type requestRepository interface {
	Create(ctx context.Context, request *models.PurchaseRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseRequest, error)
	List(ctx context.Context, filter ListFilter) ([]models.PurchaseRequest, error)
	Update(ctx context.Context, request *models.PurchaseRequest) error
	ReplaceItems(ctx context.Context, requestID uuid.UUID, items []models.RequestItem) error
	SetStatus(ctx context.Context, id uuid.UUID, status enums.RequestStatus) error
	RecordDecision(ctx context.Context, id uuid.UUID, status enums.RequestStatus, decision DecisionInput, decidedAt time.Time) error
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationType, title, body string) error
}

// Service exposes the purchase request workflow.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, input CreateRequestInput) (*PurchaseRequestDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PurchaseRequestDTO, error)
	List(ctx context.Context, filter ListFilter) ([]*PurchaseRequestDTO, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, input CreateRequestInput) (*PurchaseRequestDTO, error)
	Submit(ctx context.Context, id uuid.UUID) (*PurchaseRequestDTO, error)
	Approve(ctx context.Context, id uuid.UUID, decision DecisionInput) (*PurchaseRequestDTO, error)
	Reject(ctx context.Context, id uuid.UUID, decision DecisionInput) (*PurchaseRequestDTO, error)
	Cancel(ctx context.Context, id uuid.UUID) (*PurchaseRequestDTO, error)
}

// ServiceParams bundles the dependencies required to build a request service.
type ServiceParams struct {
	Repo          requestRepository
	Products      productFinder
	Notifications notifier
	NumberPrefix  string
	Now           func() time.Time
}

type service struct {
	repo     requestRepository
	products productFinder
	notify   notifier
	prefix   string
	now      func() time.Time
}

// NewService validates the dependencies and builds the request service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("request repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if params.NumberPrefix == "" {
		params.NumberPrefix = "PR"
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		notify:   params.Notifications,
		prefix:   params.NumberPrefix,
		now:      params.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, requesterID uuid.UUID, input CreateRequestInput) (*PurchaseRequestDTO, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = enums.RequestPriorityNormal
	}
	request := &models.PurchaseRequest{
		ID:            uuid.New(),
		RequestNumber: s.newRequestNumber(),
		Title:         strings.TrimSpace(input.Title),
		Status:        enums.RequestStatusDraft,
		Priority:      priority,
		NeededBy:      input.NeededBy,
		RequesterID:   requesterID,
		Notes:         input.Notes,
		Items:         items,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create request")
	}
	return FromModel(request), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseRequestDTO, error) {
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(request), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*PurchaseRequestDTO, error) {
	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list requests")
	}
	dtos := make([]*PurchaseRequestDTO, 0, len(requests))
	for i := range requests {
		dtos = append(dtos, FromModel(&requests[i]))
	}
	return dtos, nil
}

func (s *service) UpdateDraft(ctx context.Context, id uuid.UUID, input CreateRequestInput) (*PurchaseRequestDTO, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != enums.RequestStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only draft requests can be edited")
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceItems(ctx, request.ID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace request items")
	}

	request.Title = strings.TrimSpace(input.Title)
	if input.Priority != "" {
		request.Priority = input.Priority
	}
	request.NeededBy = input.NeededBy
	request.Notes = input.Notes
	request.Items = nil
	// Update omits items; the fresh load below picks them back up.
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update request")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Submit(ctx context.Context, id uuid.UUID) (*PurchaseRequestDTO, error) {
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != enums.RequestStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot submit a %s request", request.Status))
	}
	if len(request.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request has no items")
	}
	if err := s.repo.SetStatus(ctx, id, enums.RequestStatusPending); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit request")
	}
	request.Status = enums.RequestStatusPending
	return FromModel(request), nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID, decision DecisionInput) (*PurchaseRequestDTO, error) {
	return s.decide(ctx, id, enums.RequestStatusApproved, decision)
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, decision DecisionInput) (*PurchaseRequestDTO, error) {
	return s.decide(ctx, id, enums.RequestStatusRejected, decision)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseRequestDTO, error) {
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	switch request.Status {
	case enums.RequestStatusDraft, enums.RequestStatusPending:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot cancel a %s request", request.Status))
	}
	if err := s.repo.SetStatus(ctx, id, enums.RequestStatusCancelled); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel request")
	}
	request.Status = enums.RequestStatusCancelled
	return FromModel(request), nil
}

func (s *service) decide(ctx context.Context, id uuid.UUID, status enums.RequestStatus, decision DecisionInput) (*PurchaseRequestDTO, error) {
	if decision.ApproverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "approver is required")
	}
	request, err := s.loadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != enums.RequestStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot decide a %s request", request.Status))
	}
	if request.RequesterID == decision.ApproverID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "requesters cannot approve their own requests")
	}

	decidedAt := s.now().UTC()
	if err := s.repo.RecordDecision(ctx, id, status, decision, decidedAt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record decision")
	}

	request.Status = status
	request.ApproverID = &decision.ApproverID
	request.DecidedAt = &decidedAt
	request.DecisionNotes = decision.Notes
	s.notifyRequester(ctx, request)
	return FromModel(request), nil
}

// notifyRequester is best effort: a failed notification never rolls back
// the decision itself.
func (s *service) notifyRequester(ctx context.Context, request *models.PurchaseRequest) {
	kind := enums.NotificationTypeRequestApproved
	verb := "approved"
	if request.Status == enums.RequestStatusRejected {
		kind = enums.NotificationTypeRequestRejected
		verb = "rejected"
	}
	title := fmt.Sprintf("Request %s %s", request.RequestNumber, verb)
	body := fmt.Sprintf("Your purchase request %q was %s.", request.Title, verb)
	if request.DecisionNotes != nil && *request.DecisionNotes != "" {
		body = fmt.Sprintf("%s Notes: %s", body, *request.DecisionNotes)
	}
	_ = s.notify.Notify(ctx, request.RequesterID, kind, title, body)
}

func (s *service) validateInput(input CreateRequestInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "item product is required")
		}
		if !item.Quantity.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
	}
	return nil
}

// buildItems snapshots product name, category and unit onto each line so the
// request stays readable even if the product record changes later.
func (s *service) buildItems(ctx context.Context, inputs []CreateItemInput) ([]models.RequestItem, error) {
	items := make([]models.RequestItem, 0, len(inputs))
	for _, input := range inputs {
		product, err := s.products.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("product %s not found", input.ProductID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		items = append(items, models.RequestItem{
			ID:           uuid.New(),
			ProductID:    product.ID,
			ProductName:  product.Name,
			Category:     product.Category,
			Quantity:     input.Quantity,
			Unit:         product.Unit,
			PricePerUnit: decimal.Zero,
		})
	}
	return items, nil
}

func (s *service) newRequestNumber() string {
	stamp := s.now().UTC().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", s.prefix, stamp, suffix)
}

func (s *service) loadRequest(ctx context.Context, id uuid.UUID) (*models.PurchaseRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load request")
	}
	return request, nil
}
