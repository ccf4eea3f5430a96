package listings

import (
	"strings"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/enums"
)

// The search pipeline is a fixed sequence of in-memory stages over the
// category fetch: term, city, delivery, availability. Each stage preserves
// the order of its input, so results keep the newest-first order of the
// initial query.

// FilterByTerm keeps listings whose name, description, model, or category
// contains the trimmed term, case-insensitively. A blank term keeps all.
func FilterByTerm(items []models.Listing, term string) []models.Listing {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return items
	}

	out := items[:0:0]
	for _, item := range items {
		if matchesTerm(&item, needle) {
			out = append(out, item)
		}
	}
	return out
}

func matchesTerm(listing *models.Listing, needle string) bool {
	if strings.Contains(strings.ToLower(listing.Name), needle) {
		return true
	}
	if listing.Description != nil && strings.Contains(strings.ToLower(*listing.Description), needle) {
		return true
	}
	if listing.Model != nil && strings.Contains(strings.ToLower(*listing.Model), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(string(listing.Category)), needle)
}

// ResolveCity returns the city a listing is searchable under: the
// denormalized city column when present, otherwise the primary address city
// of the shop snapshot. Blank means the listing has no resolvable city.
func ResolveCity(listing *models.Listing) string {
	if listing.City != nil {
		if city := strings.TrimSpace(*listing.City); city != "" {
			return city
		}
	}
	return listing.ShopSnapshot.City()
}

// FilterByCity keeps listings whose resolved city equals the requested one.
// The stage is skipped entirely for country-wide searches and for the "all"
// sentinel. Listings without a resolvable city are dropped, not passed
// through.
func FilterByCity(items []models.Listing, city string, countryWide bool) []models.Listing {
	wanted := strings.TrimSpace(city)
	if countryWide || wanted == "" || wanted == enums.CityParamAll {
		return items
	}

	out := items[:0:0]
	for _, item := range items {
		resolved := ResolveCity(&item)
		if resolved == "" {
			continue
		}
		if strings.EqualFold(resolved, wanted) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByDelivery narrows listings by their delivery flag.
func FilterByDelivery(items []models.Listing, filter enums.DeliveryFilter) []models.Listing {
	if filter == "" || filter == enums.DeliveryFilterAll {
		return items
	}

	wantDelivery := filter == enums.DeliveryFilterOnly
	out := items[:0:0]
	for _, item := range items {
		if item.HasDelivery == wantDelivery {
			out = append(out, item)
		}
	}
	return out
}

// FilterByAvailability narrows listings by stock quantity.
func FilterByAvailability(items []models.Listing, filter enums.AvailabilityFilter) []models.Listing {
	if filter == "" || filter == enums.AvailabilityFilterAll {
		return items
	}

	out := items[:0:0]
	for _, item := range items {
		inStock := item.Quantity > 0
		if (filter == enums.AvailabilityFilterInStock && inStock) ||
			(filter == enums.AvailabilityFilterOutOfStock && !inStock) {
			out = append(out, item)
		}
	}
	return out
}
