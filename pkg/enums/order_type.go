package enums

import "fmt"

// OrderType distinguishes stringing jobs from product purchases.
type OrderType string

const (
	OrderTypeService OrderType = "service"
	OrderTypeProduct OrderType = "product"
)

var validOrderTypes = []OrderType{
	OrderTypeService,
	OrderTypeProduct,
}

// String implements fmt.Stringer.
func (o OrderType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderType.
func (o OrderType) IsValid() bool {
	for _, candidate := range validOrderTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderType converts raw input into an OrderType.
func ParseOrderType(value string) (OrderType, error) {
	for _, candidate := range validOrderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order type %q", value)
}

// OrderTypeOrDefault normalizes checkout metadata; anything unknown is a
// service job.
func OrderTypeOrDefault(value string) OrderType {
	if parsed, err := ParseOrderType(value); err == nil {
		return parsed
	}
	return OrderTypeService
}
