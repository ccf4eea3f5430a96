package media

import (
	"context"

	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/imghost"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

// Uploader pushes image bytes to the hosting provider.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// ServiceParams groups dependencies for the media service.
type ServiceParams struct {
	Uploader Uploader
	Logger   *logger.Logger
}

// Service hosts listing images. The provider is best-effort: when it fails
// the caller still gets a usable placeholder URL instead of an error.
type Service interface {
	UploadImage(ctx context.Context, filename, category string, data []byte) string
}

type service struct {
	uploader Uploader
	logg     *logger.Logger
}

// NewService builds a media service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Uploader == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploader is required")
	}
	return &service{uploader: params.Uploader, logg: params.Logger}, nil
}

// UploadImage sends the image to the provider once, no retries. Any failure
// falls back to a category placeholder so listing creation never blocks on
// the image host.
func (s *service) UploadImage(ctx context.Context, filename, category string, data []byte) string {
	if len(data) == 0 {
		return imghost.FallbackURL(filename, category)
	}
	url, err := s.uploader.Upload(ctx, filename, data)
	if err != nil {
		if s.logg != nil {
			ctx = s.logg.WithField(ctx, "filename", filename)
			s.logg.Warn(ctx, "image upload failed, using placeholder")
		}
		return imghost.FallbackURL(filename, category)
	}
	return url
}
