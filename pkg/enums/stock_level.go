package enums

// StockLevel buckets a product's current stock against its min/max bounds.
type StockLevel string

const (
	StockLevelOutOfStock  StockLevel = "out_of_stock"
	StockLevelLow         StockLevel = "low"
	StockLevelOK          StockLevel = "ok"
	StockLevelOverstocked StockLevel = "overstocked"
)

// String implements fmt.Stringer.
func (s StockLevel) String() string {
	return string(s)
}
