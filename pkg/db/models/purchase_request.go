package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// PurchaseRequest is a chef's ask for ingredients, routed through approval.
type PurchaseRequest struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RequestNumber string                `gorm:"column:request_number;not null;uniqueIndex"`
	Title         string                `gorm:"column:title;not null"`
	Status        enums.RequestStatus   `gorm:"column:status;type:request_status;not null;default:'draft'"`
	Priority      enums.RequestPriority `gorm:"column:priority;type:request_priority;not null;default:'normal'"`
	NeededBy      *time.Time            `gorm:"column:needed_by"`
	RequesterID   uuid.UUID             `gorm:"column:requester_id;type:uuid;not null;index"`
	ApproverID    *uuid.UUID            `gorm:"column:approver_id;type:uuid"`
	DecidedAt     *time.Time            `gorm:"column:decided_at"`
	DecisionNotes *string               `gorm:"column:decision_notes"`
	Notes         *string               `gorm:"column:notes"`
	Items         []RequestItem         `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
