// Package repo holds the shared plumbing embedded by the domain
// repositories (products, suppliers, requests, quotes, orders).
package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the GORM handle for a domain repository. Embed it and use
// DB(ctx) for every query so cancellation propagates to the driver.
type Base struct {
	db *gorm.DB
}

// NewBase wraps a GORM connection for embedding.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB binds the connection to ctx. A nil ctx returns the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
