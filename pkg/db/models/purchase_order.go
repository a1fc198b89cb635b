package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// PurchaseOrder is an order issued to one supplier, generated from the
// selections made in a quote comparison session.
type PurchaseOrder struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber      string            `gorm:"column:order_number;not null;uniqueIndex"`
	SupplierID       uuid.UUID         `gorm:"column:supplier_id;type:uuid;not null;index"`
	SupplierName     string            `gorm:"column:supplier_name;not null"`
	Status           enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'draft'"`
	RequestIDs       pq.StringArray    `gorm:"column:request_ids;type:text[]"`
	ExpectedDelivery *time.Time        `gorm:"column:expected_delivery"`
	Subtotal         decimal.Decimal   `gorm:"column:subtotal;type:numeric(14,2);not null;default:0"`
	Total            decimal.Decimal   `gorm:"column:total;type:numeric(14,2);not null;default:0"`
	Notes            *string           `gorm:"column:notes"`
	CreatedBy        uuid.UUID         `gorm:"column:created_by;type:uuid;not null"`
	SentAt           *time.Time        `gorm:"column:sent_at"`
	ConfirmedAt      *time.Time        `gorm:"column:confirmed_at"`
	ReceivedAt       *time.Time        `gorm:"column:received_at"`
	CancelledAt      *time.Time        `gorm:"column:cancelled_at"`
	Items            []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
