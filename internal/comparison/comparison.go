// Package comparison builds the per-product rollup of supplier prices used by
// the quote comparison screen and by purchase order generation. It is a pure
// in-memory computation: inputs are request/quote snapshots from the
// repositories, outputs are transient view structures that are never
// persisted.
package comparison

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/db/models"
	"github.com/procurechef/procurechef-backend/pkg/enums"
	"github.com/procurechef/procurechef-backend/pkg/types"
)

// SupplierOffer is one supplier's price for a single product, derived from a
// quote item. At most one offer per supplier survives aggregation.
type SupplierOffer struct {
	SupplierID          uuid.UUID                `json:"supplier_id"`
	SupplierName        string                   `json:"supplier_name"`
	Price               decimal.Decimal          `json:"price"`
	InStock             bool                     `json:"in_stock"`
	SupplierProductCode *string                  `json:"supplier_product_code,omitempty"`
	MinimumOrderQty     *decimal.Decimal         `json:"minimum_order_qty,omitempty"`
	PackageConversion   *types.PackageConversion `json:"package_conversion,omitempty"`
}

// ProductComparison aggregates every supplier's offer for one requested
// product. Offers are kept sorted ascending by price.
type ProductComparison struct {
	ProductID          uuid.UUID         `json:"product_id"`
	ProductName        string            `json:"product_name"`
	Category           string            `json:"category"`
	Unit               enums.ProductUnit `json:"unit"`
	RequestIDs         []uuid.UUID       `json:"request_ids"`
	Quantity           decimal.Decimal   `json:"quantity"`
	Offers             []SupplierOffer   `json:"offers"`
	SelectedSupplierID *uuid.UUID        `json:"selected_supplier_id,omitempty"`
}

// Options controls which quotes participate in aggregation.
type Options struct {
	// IncludeStatuses restricts aggregation to quotes in the listed
	// lifecycle states. An empty slice includes every quote regardless of
	// status; callers that want the production default should use
	// DefaultIncludeStatuses.
	IncludeStatuses []enums.QuoteStatus
}

// DefaultIncludeStatuses is what the comparison screen uses: only quotes the
// supplier actually returned or that purchasing already approved.
func DefaultIncludeStatuses() []enums.QuoteStatus {
	return []enums.QuoteStatus{enums.QuoteStatusReceived, enums.QuoteStatusApproved}
}

// Aggregate folds the given requests and quotes into one ProductComparison
// per requested product. The result order is the order in which products were
// first seen while scanning request items, so repeated calls with the same
// inputs produce structurally identical output.
//
// Quote items for products no request asked for are skipped. When the same
// supplier quotes the same product more than once, the lower price wins.
func Aggregate(requests []models.PurchaseRequest, quotes []models.SupplierQuote, opts Options) []*ProductComparison {
	byProduct := make(map[uuid.UUID]*ProductComparison, len(requests))
	order := make([]uuid.UUID, 0, len(requests))

	// Seed phase: one entry per requested product. Quantity is the largest
	// single ask across requests, not the sum.
	for _, request := range requests {
		for _, item := range request.Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &ProductComparison{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Category:    item.Category,
					Unit:        item.Unit,
					RequestIDs:  []uuid.UUID{request.ID},
					Quantity:    item.Quantity,
				}
				byProduct[item.ProductID] = entry
				order = append(order, item.ProductID)
				continue
			}
			if !containsID(entry.RequestIDs, request.ID) {
				entry.RequestIDs = append(entry.RequestIDs, request.ID)
			}
			if item.Quantity.GreaterThan(entry.Quantity) {
				entry.Quantity = item.Quantity
			}
		}
	}

	// Quote phase: fold offers into the seeded entries.
	for _, quote := range quotes {
		if !statusIncluded(quote.Status, opts.IncludeStatuses) {
			continue
		}
		for _, item := range quote.Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				// Orphan quote item, the product was never requested.
				continue
			}
			offer := SupplierOffer{
				SupplierID:          quote.SupplierID,
				SupplierName:        quote.SupplierName,
				Price:               item.PricePerUnit,
				InStock:             item.InStock,
				SupplierProductCode: item.SupplierProductCode,
				MinimumOrderQty:     item.MinimumOrderQty,
				PackageConversion:   item.PackageConversion,
			}
			if idx := offerIndex(entry.Offers, quote.SupplierID); idx >= 0 {
				if offer.Price.LessThan(entry.Offers[idx].Price) {
					entry.Offers[idx] = offer
				}
				continue
			}
			entry.Offers = append(entry.Offers, offer)
		}
	}

	// Sort phase: ascending by price, ties keep first-encountered order.
	result := make([]*ProductComparison, 0, len(order))
	for _, productID := range order {
		entry := byProduct[productID]
		sort.SliceStable(entry.Offers, func(i, j int) bool {
			return entry.Offers[i].Price.LessThan(entry.Offers[j].Price)
		})
		result = append(result, entry)
	}
	return result
}

// BestPrice returns the cheapest offer for this product, or nil when no
// supplier quoted it.
func (c *ProductComparison) BestPrice() *SupplierOffer {
	if c == nil || len(c.Offers) == 0 {
		return nil
	}
	return &c.Offers[0]
}

// SelectedOffer resolves SelectedSupplierID against the current offer list.
// It returns nil for an empty or dangling selection so order generation never
// fabricates a line item without a real price behind it.
func (c *ProductComparison) SelectedOffer() *SupplierOffer {
	if c == nil || c.SelectedSupplierID == nil {
		return nil
	}
	for i := range c.Offers {
		if c.Offers[i].SupplierID == *c.SelectedSupplierID {
			return &c.Offers[i]
		}
	}
	return nil
}

// SelectSupplier records the user's supplier choice for one product. The
// write is unconditional: supplierID is not checked against the offer list,
// downstream consumers must resolve it via SelectedOffer. Returns false when
// productID is not part of the comparison set.
func SelectSupplier(comparisons []*ProductComparison, productID, supplierID uuid.UUID) bool {
	for _, entry := range comparisons {
		if entry.ProductID == productID {
			id := supplierID
			entry.SelectedSupplierID = &id
			return true
		}
	}
	return false
}

// ChangeQuantity overwrites the quantity for one product's entry. This is
// what-if sizing for order generation; it does not re-aggregate and does not
// re-check supplier minimum order quantities. Returns false when productID is
// not part of the comparison set.
func ChangeQuantity(comparisons []*ProductComparison, productID uuid.UUID, quantity decimal.Decimal) bool {
	for _, entry := range comparisons {
		if entry.ProductID == productID {
			entry.Quantity = quantity
			return true
		}
	}
	return false
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func offerIndex(offers []SupplierOffer, supplierID uuid.UUID) int {
	for i := range offers {
		if offers[i].SupplierID == supplierID {
			return i
		}
	}
	return -1
}

func statusIncluded(status enums.QuoteStatus, include []enums.QuoteStatus) bool {
	if len(include) == 0 {
		return true
	}
	for _, candidate := range include {
		if status == candidate {
			return true
		}
	}
	return false
}
