package controllers

import (
	"net/http"

	"github.com/ishoep/pixelpage-backend/api/responses"
	"github.com/ishoep/pixelpage-backend/api/validators"
	listingssvc "github.com/ishoep/pixelpage-backend/internal/listings"
	shopssvc "github.com/ishoep/pixelpage-backend/internal/shops"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
	"github.com/ishoep/pixelpage-backend/pkg/types"
)

type shopAddressRequest struct {
	City   string `json:"city" validate:"required"`
	Street string `json:"street"`
}

type upsertShopRequest struct {
	Name        string               `json:"name" validate:"required,max=255"`
	Phone       *string              `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email       *string              `json:"email,omitempty" validate:"omitempty,email"`
	Telegram    *string              `json:"telegram,omitempty" validate:"omitempty,max=255"`
	Website     *string              `json:"website,omitempty" validate:"omitempty,max=255"`
	Description *string              `json:"description,omitempty"`
	Addresses   []shopAddressRequest `json:"addresses" validate:"required,min=1,dive"`
	HasDelivery bool                 `json:"hasDelivery"`
}

func (req upsertShopRequest) toInput() shopssvc.UpsertShopInput {
	addresses := make(types.AddressList, 0, len(req.Addresses))
	for _, addr := range req.Addresses {
		addresses = append(addresses, types.ShopAddress{City: addr.City, Street: addr.Street})
	}
	return shopssvc.UpsertShopInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Telegram:    req.Telegram,
		Website:     req.Website,
		Description: req.Description,
		Addresses:   addresses,
		HasDelivery: req.HasDelivery,
	}
}

// UpsertShop creates the caller's shop or updates the existing one. Updates
// also push the fresh shop details onto every listing.
func UpsertShop(svc shopssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertShopRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.Upsert(r.Context(), userID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

func GetOwnShop(svc shopssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.GetByOwner(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

type shopPageResponse struct {
	Shop     *shopssvc.ShopDTO        `json:"shop"`
	Listings []listingssvc.ListingDTO `json:"listings"`
}

// GetShop serves the public shop page: the profile plus its listings.
func GetShop(shops shopssvc.Service, listings listingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := shops.GetByID(r.Context(), shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := listings.PublicByShop(r.Context(), shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shopPageResponse{Shop: shop, Listings: items})
	}
}
