package listings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/enums"
)

// ShopSummaryDTO is the seller block embedded in every listing payload.
type ShopSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city,omitempty"`
	HasDelivery bool      `json:"has_delivery"`
}

// ListingDTO is the public projection of a listing.
type ListingDTO struct {
	ID            uuid.UUID             `json:"id"`
	ArticleNumber int                   `json:"article_number"`
	Name          string                `json:"name"`
	Model         *string               `json:"model,omitempty"`
	Category      enums.ListingCategory `json:"category"`
	Price         decimal.Decimal       `json:"price"`
	Quantity      int                   `json:"quantity"`
	Description   *string               `json:"description,omitempty"`
	ImageURL      *string               `json:"image_url,omitempty"`
	City          string                `json:"city,omitempty"`
	Status        string                `json:"status"`
	HasDelivery   bool                  `json:"has_delivery"`
	Shop          ShopSummaryDTO        `json:"shop"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// CreateListingInput captures the fields a seller provides for a new listing.
type CreateListingInput struct {
	Name        string
	Model       *string
	Category    enums.ListingCategory
	Price       decimal.Decimal
	Quantity    int
	Description *string
	ImageURL    *string
	Status      string
}

// UpdateListingInput holds optional partial updates for a listing.
type UpdateListingInput struct {
	Name        *string
	Model       *string
	Category    *enums.ListingCategory
	Price       *decimal.Decimal
	Quantity    *int
	Description *string
	ImageURL    *string
	Status      *string
}

// SearchQuery mirrors the public search URL surface.
type SearchQuery struct {
	Term         string
	Category     string
	City         string
	CountryWide  bool
	Delivery     enums.DeliveryFilter
	Availability enums.AvailabilityFilter
}

// ToDTO maps the persistence model onto the public projection.
func ToDTO(listing *models.Listing) ListingDTO {
	return ListingDTO{
		ID:            listing.ID,
		ArticleNumber: listing.ArticleNumber,
		Name:          listing.Name,
		Model:         listing.Model,
		Category:      listing.Category,
		Price:         listing.Price,
		Quantity:      listing.Quantity,
		Description:   listing.Description,
		ImageURL:      listing.ImageURL,
		City:          ResolveCity(listing),
		Status:        listing.Status,
		HasDelivery:   listing.HasDelivery,
		Shop: ShopSummaryDTO{
			ID:          listing.ShopSnapshot.ID,
			Name:        listing.ShopSnapshot.Name,
			City:        listing.ShopSnapshot.City(),
			HasDelivery: listing.ShopSnapshot.HasDelivery,
		},
		CreatedAt: listing.CreatedAt,
		UpdatedAt: listing.UpdatedAt,
	}
}

func toDTOs(items []models.Listing) []ListingDTO {
	out := make([]ListingDTO, 0, len(items))
	for i := range items {
		out = append(out, ToDTO(&items[i]))
	}
	return out
}
