package suppliers

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
)

// SupplierDTO is the transport shape for vendor records.
type SupplierDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactName  *string   `json:"contact_name,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	PaymentTerms *string   `json:"payment_terms,omitempty"`
	LeadTimeDays int       `json:"lead_time_days"`
	Categories   []string  `json:"categories"`
	Rating       *float64  `json:"rating,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSupplierDTO holds creation-time data for a new supplier.
type CreateSupplierDTO struct {
	Name         string
	ContactName  *string
	Email        *string
	Phone        *string
	Address      *string
	PaymentTerms *string
	LeadTimeDays *int
	Categories   []string
	Rating       *float64
	Notes        *string
}

// UpdateSupplierInput captures the allowed supplier fields for mutation.
type UpdateSupplierInput struct {
	Name         *string
	ContactName  *string
	Email        *string
	Phone        *string
	Address      *string
	PaymentTerms *string
	LeadTimeDays *int
	Categories   *[]string
	Rating       *float64
	Notes        *string
}

// FromModel maps the persisted supplier into a DTO.
func FromModel(m *models.Supplier) *SupplierDTO {
	if m == nil {
		return nil
	}
	return &SupplierDTO{
		ID:           m.ID,
		Name:         m.Name,
		ContactName:  m.ContactName,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		PaymentTerms: m.PaymentTerms,
		LeadTimeDays: m.LeadTimeDays,
		Categories:   append([]string(nil), m.Categories...),
		Rating:       m.Rating,
		Notes:        m.Notes,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO, supplying defaults.
func (c CreateSupplierDTO) ToModel() *models.Supplier {
	model := &models.Supplier{
		Name:         c.Name,
		ContactName:  c.ContactName,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		PaymentTerms: c.PaymentTerms,
		LeadTimeDays: 1,
		Categories:   pq.StringArray(append([]string(nil), c.Categories...)),
		Rating:       c.Rating,
		Notes:        c.Notes,
		IsActive:     true,
	}
	if c.LeadTimeDays != nil {
		model.LeadTimeDays = *c.LeadTimeDays
	}
	return model
}
