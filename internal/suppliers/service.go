package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
)

type supplierRepository interface {
	Create(ctx context.Context, dto CreateSupplierDTO) (*models.Supplier, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	List(ctx context.Context, filter ListFilter) ([]models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// OpenOrderCounter reports how many live purchase orders reference a supplier.
// Satisfied by the orders repository.
type OpenOrderCounter interface {
	CountOpenBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
}

// Service exposes supplier operations.
type Service interface {
	Create(ctx context.Context, dto CreateSupplierDTO) (*SupplierDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SupplierDTO, error)
	List(ctx context.Context, filter ListFilter) ([]*SupplierDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*SupplierDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       supplierRepository
	openOrders OpenOrderCounter
}

// NewService builds a supplier service with the provided repositories.
func NewService(repo supplierRepository, openOrders OpenOrderCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	if openOrders == nil {
		return nil, fmt.Errorf("open order counter required")
	}
	return &service{repo: repo, openOrders: openOrders}, nil
}

func (s *service) Create(ctx context.Context, dto CreateSupplierDTO) (*SupplierDTO, error) {
	if strings.TrimSpace(dto.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}
	supplier, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier")
	}
	return FromModel(supplier), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*SupplierDTO, error) {
	supplier, err := s.loadSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(supplier), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*SupplierDTO, error) {
	suppliers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}
	result := make([]*SupplierDTO, 0, len(suppliers))
	for i := range suppliers {
		result = append(result, FromModel(&suppliers[i]))
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*SupplierDTO, error) {
	supplier, err := s.loadSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name cannot be blank")
		}
		supplier.Name = *input.Name
	}
	if input.ContactName != nil {
		supplier.ContactName = cloneStringPtr(input.ContactName)
	}
	if input.Email != nil {
		supplier.Email = cloneStringPtr(input.Email)
	}
	if input.Phone != nil {
		supplier.Phone = cloneStringPtr(input.Phone)
	}
	if input.Address != nil {
		supplier.Address = cloneStringPtr(input.Address)
	}
	if input.PaymentTerms != nil {
		supplier.PaymentTerms = cloneStringPtr(input.PaymentTerms)
	}
	if input.LeadTimeDays != nil {
		if *input.LeadTimeDays < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead time cannot be negative")
		}
		supplier.LeadTimeDays = *input.LeadTimeDays
	}
	if input.Categories != nil {
		supplier.Categories = pq.StringArray(append([]string(nil), (*input.Categories)...))
	}
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
		}
		rating := *input.Rating
		supplier.Rating = &rating
	}
	if input.Notes != nil {
		supplier.Notes = cloneStringPtr(input.Notes)
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update supplier")
	}
	return FromModel(supplier), nil
}

// Deactivate retires a supplier. Suppliers with purchase orders still in
// flight cannot be retired until those orders close out.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadSupplier(ctx, id); err != nil {
		return err
	}

	open, err := s.openOrders.CountOpenBySupplier(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open orders")
	}
	if open > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("supplier has %d open order(s)", open))
	}

	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate supplier")
	}
	return nil
}

func (s *service) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadSupplier(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reactivate supplier")
	}
	return nil
}

func (s *service) loadSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	return supplier, nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
