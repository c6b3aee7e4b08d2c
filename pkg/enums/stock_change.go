package enums

import "fmt"

// StockChangeType records why a product's stock level moved.
type StockChangeType string

const (
	StockChangeRestock    StockChangeType = "restock"
	StockChangeSale       StockChangeType = "sale"
	StockChangeAdjustment StockChangeType = "adjustment"
)

var validStockChangeTypes = []StockChangeType{
	StockChangeRestock,
	StockChangeSale,
	StockChangeAdjustment,
}

// String implements fmt.Stringer.
func (t StockChangeType) String() string {
	return string(t)
}

// IsValid reports whether the change type is recognized.
func (t StockChangeType) IsValid() bool {
	for _, candidate := range validStockChangeTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseStockChangeType converts a raw string into a StockChangeType.
func ParseStockChangeType(value string) (StockChangeType, error) {
	for _, candidate := range validStockChangeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock change type %q", value)
}
