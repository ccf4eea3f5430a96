package controllers

import (
	"net/http"

	"github.com/ishoep/pixelpage-backend/api/responses"
	"github.com/ishoep/pixelpage-backend/api/validators"
	citiessvc "github.com/ishoep/pixelpage-backend/internal/cities"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

func ListCities(svc citiessvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.List())
	}
}

func GetCityPreference(svc citiessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		city, err := svc.GetPreference(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"city": city})
	}
}

type setCityPreferenceRequest struct {
	City string `json:"city" validate:"required,max=128"`
}

func SetCityPreference(svc citiessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setCityPreferenceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetPreference(r.Context(), userID, payload.City); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"city": payload.City})
	}
}
