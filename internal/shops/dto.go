package shops

import (
	"time"

	"github.com/google/uuid"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/types"
)

// ShopDTO is the public projection of a shop profile.
type ShopDTO struct {
	ID          uuid.UUID         `json:"id"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	Name        string            `json:"name"`
	Phone       *string           `json:"phone,omitempty"`
	Email       *string           `json:"email,omitempty"`
	Telegram    *string           `json:"telegram,omitempty"`
	Website     *string           `json:"website,omitempty"`
	Description *string           `json:"description,omitempty"`
	Addresses   types.AddressList `json:"addresses"`
	City        string            `json:"city,omitempty"`
	HasDelivery bool              `json:"has_delivery"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// UpsertShopInput captures the editable shop profile fields.
type UpsertShopInput struct {
	Name        string
	Phone       *string
	Email       *string
	Telegram    *string
	Website     *string
	Description *string
	Addresses   types.AddressList
	HasDelivery bool
}

// ToDTO maps the persistence model onto the public projection.
func ToDTO(shop *models.Shop) ShopDTO {
	return ShopDTO{
		ID:          shop.ID,
		OwnerID:     shop.OwnerID,
		Name:        shop.Name,
		Phone:       shop.Phone,
		Email:       shop.Email,
		Telegram:    shop.Telegram,
		Website:     shop.Website,
		Description: shop.Description,
		Addresses:   shop.Addresses,
		City:        shop.Addresses.PrimaryCity(),
		HasDelivery: shop.HasDelivery,
		CreatedAt:   shop.CreatedAt,
		UpdatedAt:   shop.UpdatedAt,
	}
}
