package enums

import "fmt"

// ListingCategory represents the fixed category set of the classifieds board.
// Values are stored and matched verbatim, including on the search URL surface.
type ListingCategory string

const (
	ListingCategoryParts       ListingCategory = "Запчасти"
	ListingCategoryPhones      ListingCategory = "Телефоны"
	ListingCategoryAccessories ListingCategory = "Аксессуары"
)

// ListingCategoryAll is the sentinel the search surface uses for "no category
// filter". It is not a persistable category.
const ListingCategoryAll = "Все категории"

var validListingCategories = []ListingCategory{
	ListingCategoryParts,
	ListingCategoryPhones,
	ListingCategoryAccessories,
}

// ListingCategories returns the persistable categories in display order.
func ListingCategories() []ListingCategory {
	out := make([]ListingCategory, len(validListingCategories))
	copy(out, validListingCategories)
	return out
}

// String implements fmt.Stringer.
func (c ListingCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ListingCategory.
func (c ListingCategory) IsValid() bool {
	for _, candidate := range validListingCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseListingCategory converts raw input into a ListingCategory.
func ParseListingCategory(value string) (ListingCategory, error) {
	for _, candidate := range validListingCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing category %q", value)
}

// Listing statuses observed in the product flows. Status is free text on the
// listing record; these are the values the views write.
const (
	ListingStatusOnDisplay   = "На витрине"
	ListingStatusInWarehouse = "На складе"
	ListingStatusOutOfStock  = "Нет в наличии"
)
