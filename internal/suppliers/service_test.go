package suppliers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	pkgerrors "github.com/procurechef/procurechef-backend/pkg/errors"
)

type stubSupplierRepo struct {
	supplier  *models.Supplier
	updated   *models.Supplier
	setActive map[uuid.UUID]bool
}

func (s *stubSupplierRepo) Create(ctx context.Context, dto CreateSupplierDTO) (*models.Supplier, error) {
	supplier := dto.ToModel()
	supplier.ID = uuid.New()
	return supplier, nil
}

func (s *stubSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	if s.supplier == nil || s.supplier.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.supplier
	return &cpy, nil
}

func (s *stubSupplierRepo) List(ctx context.Context, filter ListFilter) ([]models.Supplier, error) {
	if s.supplier == nil {
		return nil, nil
	}
	return []models.Supplier{*s.supplier}, nil
}

func (s *stubSupplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	s.updated = supplier
	return nil
}

func (s *stubSupplierRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if s.setActive == nil {
		s.setActive = map[uuid.UUID]bool{}
	}
	s.setActive[id] = active
	return nil
}

type stubOrderCounter struct {
	open int64
	err  error
}

func (s stubOrderCounter) CountOpenBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	return s.open, s.err
}

func TestServiceCreateRequiresName(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubSupplierRepo{}, stubOrderCounter{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Create(context.Background(), CreateSupplierDTO{Name: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateSupplierDTO{Name: "Valley Farms"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !dto.IsActive || dto.LeadTimeDays != 1 {
		t.Fatalf("expected active supplier with default lead time, got %+v", dto)
	}
}

func TestServiceUpdateValidatesRating(t *testing.T) {
	t.Parallel()

	supplier := &models.Supplier{ID: uuid.New(), Name: "Valley Farms", IsActive: true}
	repo := &stubSupplierRepo{supplier: supplier}
	svc, err := NewService(repo, stubOrderCounter{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	badRating := 7.5
	_, err = svc.Update(context.Background(), supplier.ID, UpdateSupplierInput{Rating: &badRating})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	goodRating := 4.5
	terms := "net 30"
	dto, err := svc.Update(context.Background(), supplier.ID, UpdateSupplierInput{
		Rating:       &goodRating,
		PaymentTerms: &terms,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Rating == nil || *dto.Rating != 4.5 {
		t.Fatalf("expected rating 4.5, got %v", dto.Rating)
	}
	if repo.updated == nil || repo.updated.PaymentTerms == nil || *repo.updated.PaymentTerms != "net 30" {
		t.Fatalf("expected payment terms persisted, got %+v", repo.updated)
	}
}

func TestServiceDeactivateGuardsOpenOrders(t *testing.T) {
	t.Parallel()

	supplier := &models.Supplier{ID: uuid.New(), Name: "Valley Farms", IsActive: true}
	repo := &stubSupplierRepo{supplier: supplier}
	svc, err := NewService(repo, stubOrderCounter{open: 2})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	err = svc.Deactivate(context.Background(), supplier.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict with open orders, got %v", err)
	}
	if len(repo.setActive) != 0 {
		t.Fatal("supplier must not be deactivated while orders are open")
	}
}

func TestServiceDeactivateAndReactivate(t *testing.T) {
	t.Parallel()

	supplier := &models.Supplier{ID: uuid.New(), Name: "Valley Farms", IsActive: true}
	repo := &stubSupplierRepo{supplier: supplier}
	svc, err := NewService(repo, stubOrderCounter{open: 0})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if err := svc.Deactivate(context.Background(), supplier.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if active, ok := repo.setActive[supplier.ID]; !ok || active {
		t.Fatalf("expected supplier flagged inactive, got %v", repo.setActive)
	}

	if err := svc.Reactivate(context.Background(), supplier.ID); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if active := repo.setActive[supplier.ID]; !active {
		t.Fatal("expected supplier flagged active again")
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubSupplierRepo{}, stubOrderCounter{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.GetByID(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
