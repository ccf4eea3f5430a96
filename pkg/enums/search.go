package enums

import "fmt"

// DeliveryFilter narrows listings by their delivery flag.
type DeliveryFilter string

const (
	DeliveryFilterAll     DeliveryFilter = "all"
	DeliveryFilterOnly    DeliveryFilter = "only"
	DeliveryFilterExclude DeliveryFilter = "exclude"
)

// Wire values for the delivery query parameter. The URL surface predates the
// internal names and must stay byte-for-byte stable for bookmarked searches.
const (
	DeliveryParamAll        = "all"
	DeliveryParamDelivery   = "delivery"
	DeliveryParamNoDelivery = "nodelivery"
)

// String implements fmt.Stringer.
func (f DeliveryFilter) String() string {
	return string(f)
}

// IsValid reports whether the value is a known DeliveryFilter.
func (f DeliveryFilter) IsValid() bool {
	switch f {
	case DeliveryFilterAll, DeliveryFilterOnly, DeliveryFilterExclude:
		return true
	}
	return false
}

// ParseDeliveryParam maps the URL parameter onto the internal filter. An
// empty value means no filtering.
func ParseDeliveryParam(value string) (DeliveryFilter, error) {
	switch value {
	case "", DeliveryParamAll:
		return DeliveryFilterAll, nil
	case DeliveryParamDelivery:
		return DeliveryFilterOnly, nil
	case DeliveryParamNoDelivery:
		return DeliveryFilterExclude, nil
	}
	return "", fmt.Errorf("invalid delivery filter %q", value)
}

// WireValue returns the URL parameter form of the filter.
func (f DeliveryFilter) WireValue() string {
	switch f {
	case DeliveryFilterOnly:
		return DeliveryParamDelivery
	case DeliveryFilterExclude:
		return DeliveryParamNoDelivery
	default:
		return DeliveryParamAll
	}
}

// AvailabilityFilter narrows listings by stock quantity.
type AvailabilityFilter string

const (
	AvailabilityFilterAll        AvailabilityFilter = "all"
	AvailabilityFilterInStock    AvailabilityFilter = "inStock"
	AvailabilityFilterOutOfStock AvailabilityFilter = "outOfStock"
)

// String implements fmt.Stringer.
func (f AvailabilityFilter) String() string {
	return string(f)
}

// IsValid reports whether the value is a known AvailabilityFilter.
func (f AvailabilityFilter) IsValid() bool {
	switch f {
	case AvailabilityFilterAll, AvailabilityFilterInStock, AvailabilityFilterOutOfStock:
		return true
	}
	return false
}

// ParseAvailabilityParam maps the URL parameter onto the internal filter. An
// empty value means no filtering.
func ParseAvailabilityParam(value string) (AvailabilityFilter, error) {
	switch value {
	case "", string(AvailabilityFilterAll):
		return AvailabilityFilterAll, nil
	case string(AvailabilityFilterInStock):
		return AvailabilityFilterInStock, nil
	case string(AvailabilityFilterOutOfStock):
		return AvailabilityFilterOutOfStock, nil
	}
	return "", fmt.Errorf("invalid availability filter %q", value)
}

// CityParamAll is the city sentinel meaning "no city filter".
const CityParamAll = "all"
