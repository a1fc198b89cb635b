package enums

import "fmt"

// ProductUnit is the unit a product is stocked and requested in.
type ProductUnit string

const (
	ProductUnitKilogram   ProductUnit = "kg"
	ProductUnitGram       ProductUnit = "g"
	ProductUnitLiter      ProductUnit = "l"
	ProductUnitMilliliter ProductUnit = "ml"
	ProductUnitPiece      ProductUnit = "piece"
	ProductUnitCase       ProductUnit = "case"
	ProductUnitDozen      ProductUnit = "dozen"
	ProductUnitBunch      ProductUnit = "bunch"
)

var validProductUnits = []ProductUnit{
	ProductUnitKilogram,
	ProductUnitGram,
	ProductUnitLiter,
	ProductUnitMilliliter,
	ProductUnitPiece,
	ProductUnitCase,
	ProductUnitDozen,
	ProductUnitBunch,
}

// String implements fmt.Stringer.
func (p ProductUnit) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductUnit.
func (p ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
