package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PackageConversion describes how a supplier's packaging unit maps onto the
// unit a purchase request asked for. PackagePrice is the price of one
// supplier package.
type PackageConversion struct {
	SupplierUnit    string          `json:"supplier_unit"`
	UnitsPerPackage decimal.Decimal `json:"units_per_package"`
	PackagePrice    decimal.Decimal `json:"package_price"`
}

// Value marshals the conversion into a JSONB column.
func (p PackageConversion) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan decodes the JSONB column.
func (p *PackageConversion) Scan(value interface{}) error {
	if value == nil {
		*p = PackageConversion{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("package conversion: unsupported scan type %T", value)
	}
}
