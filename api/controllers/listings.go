package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/api/responses"
	"github.com/ishoep/pixelpage-backend/api/validators"
	listingssvc "github.com/ishoep/pixelpage-backend/internal/listings"
	"github.com/ishoep/pixelpage-backend/pkg/enums"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/imghost"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

type createListingRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Model       *string         `json:"model,omitempty" validate:"omitempty,max=255"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Status      string          `json:"status,omitempty"`
}

func CreateListing(svc listingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createListingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseListingCategory(strings.TrimSpace(payload.Category))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		imageURL := payload.ImageURL
		if imageURL == nil {
			fallback := imghost.FallbackURL(payload.Name, category.String())
			imageURL = &fallback
		}

		listing, err := svc.Create(r.Context(), userID, listingssvc.CreateListingInput{
			Name:        payload.Name,
			Model:       payload.Model,
			Category:    category,
			Price:       payload.Price,
			Quantity:    payload.Quantity,
			Description: payload.Description,
			ImageURL:    imageURL,
			Status:      payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, listing)
	}
}

type updateListingRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Model       *string          `json:"model,omitempty" validate:"omitempty,max=255"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Status      *string          `json:"status,omitempty"`
}

func UpdateListing(svc listingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listingID, err := pathUUID(r, "listingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateListingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := listingssvc.UpdateListingInput{
			Name:        payload.Name,
			Model:       payload.Model,
			Price:       payload.Price,
			Quantity:    payload.Quantity,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			Status:      payload.Status,
		}
		if payload.Category != nil {
			category, err := enums.ParseListingCategory(strings.TrimSpace(*payload.Category))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			input.Category = &category
		}

		listing, err := svc.Update(r.Context(), userID, listingID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

func DeleteListing(svc listingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listingID, err := pathUUID(r, "listingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, listingID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func GetListing(svc listingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, err := pathUUID(r, "listingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := svc.GetByID(r.Context(), listingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

// Warehouse returns the caller's stock that is not on display.
func Warehouse(svc listingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listings, err := svc.Warehouse(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listings)
	}
}

// SearchListings maps the public query parameters onto the search pipeline.
func SearchListings(svc listingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		deliveryParam, err := validators.ParseQueryEnum(r, "delivery", enums.DeliveryParamAll,
			enums.DeliveryParamAll, enums.DeliveryParamDelivery, enums.DeliveryParamNoDelivery)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		delivery, err := enums.ParseDeliveryParam(deliveryParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery filter"))
			return
		}

		availabilityParam, err := validators.ParseQueryEnum(r, "availability", string(enums.AvailabilityFilterAll),
			string(enums.AvailabilityFilterAll), string(enums.AvailabilityFilterInStock), string(enums.AvailabilityFilterOutOfStock))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		availability, err := enums.ParseAvailabilityParam(availabilityParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid availability filter"))
			return
		}

		countryWide, err := validators.ParseQueryBool(r, "countrySearch", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results, err := svc.Search(r.Context(), listingssvc.SearchQuery{
			Term:         validators.SanitizeString(query.Get("term"), 255),
			Category:     validators.SanitizeString(query.Get("category"), 128),
			City:         validators.SanitizeString(query.Get("city"), 128),
			CountryWide:  countryWide,
			Delivery:     delivery,
			Availability: availability,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}
