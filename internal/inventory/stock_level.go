package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/procurechef/procurechef-backend/pkg/enums"
)

// StockLevelFor buckets a product's current stock against its min/max
// thresholds. A zero max disables the overstock bucket.
func StockLevelFor(current, min, max decimal.Decimal) enums.StockLevel {
	switch {
	case current.LessThanOrEqual(decimal.Zero):
		return enums.StockLevelOutOfStock
	case current.LessThan(min):
		return enums.StockLevelLow
	case max.IsPositive() && current.GreaterThan(max):
		return enums.StockLevelOverstocked
	default:
		return enums.StockLevelOK
	}
}
