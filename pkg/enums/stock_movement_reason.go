package enums

import "fmt"

// StockMovementReason records why a product's stock changed.
type StockMovementReason string

const (
	StockMovementReasonReceived    StockMovementReason = "received"
	StockMovementReasonAdjustment  StockMovementReason = "adjustment"
	StockMovementReasonConsumption StockMovementReason = "consumption"
)

var validStockMovementReasons = []StockMovementReason{
	StockMovementReasonReceived,
	StockMovementReasonAdjustment,
	StockMovementReasonConsumption,
}

// String implements fmt.Stringer.
func (s StockMovementReason) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockMovementReason.
func (s StockMovementReason) IsValid() bool {
	for _, candidate := range validStockMovementReasons {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockMovementReason converts raw input into a StockMovementReason.
func ParseStockMovementReason(value string) (StockMovementReason, error) {
	for _, candidate := range validStockMovementReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock movement reason %q", value)
}
