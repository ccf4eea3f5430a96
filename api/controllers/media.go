package controllers

import (
	"io"
	"net/http"

	"github.com/ishoep/pixelpage-backend/api/responses"
	mediasvc "github.com/ishoep/pixelpage-backend/internal/media"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

const maxImageBytes = 10 << 20

// UploadImage accepts a multipart form with an "image" file and an optional
// "category" field used to pick the placeholder when hosting fails.
func UploadImage(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := currentUserID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image file is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read image"))
			return
		}

		url := svc.UploadImage(r.Context(), header.Filename, r.FormValue("category"), data)
		responses.WriteSuccess(w, map[string]string{"url": url})
	}
}
