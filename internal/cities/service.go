package cities

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
)

// The supported cities in selector order. The first entry is the default
// preference for users who never picked one.
var uzbekistanCities = []string{
	"Ташкент",
	"Самарканд",
	"Бухара",
	"Наманган",
	"Андижан",
	"Нукус",
	"Фергана",
	"Карши",
	"Коканд",
	"Маргилан",
	"Чирчик",
	"Джизак",
}

// PreferenceStore keeps per-user selected cities.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CityPreferenceKey(userID string) string
}

// ServiceParams groups dependencies for the city service.
type ServiceParams struct {
	Store  PreferenceStore
	Logger *logger.Logger
}

// Service serves the fixed city list and per-user city preference.
type Service interface {
	List() []string
	GetPreference(ctx context.Context, userID uuid.UUID) (string, error)
	SetPreference(ctx context.Context, userID uuid.UUID, city string) error
}

type service struct {
	store PreferenceStore
	logg  *logger.Logger
}

// NewService builds a city service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "preference store is required")
	}
	return &service{store: params.Store, logg: params.Logger}, nil
}

// List returns the supported cities in selector order.
func (s *service) List() []string {
	out := make([]string, len(uzbekistanCities))
	copy(out, uzbekistanCities)
	return out
}

// GetPreference returns the user's selected city, falling back to the
// default when nothing was stored yet.
func (s *service) GetPreference(ctx context.Context, userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	city, err := s.store.Get(ctx, s.store.CityPreferenceKey(userID.String()))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return uzbekistanCities[0], nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read city preference")
	}
	return city, nil
}

// SetPreference stores the user's selected city. Only known cities are
// accepted so a stale client cannot poison the selector.
func (s *service) SetPreference(ctx context.Context, userID uuid.UUID, city string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !isKnownCity(city) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown city")
	}
	key := s.store.CityPreferenceKey(userID.String())
	if err := s.store.Set(ctx, key, city, 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store city preference")
	}
	return nil
}

func isKnownCity(city string) bool {
	for _, known := range uzbekistanCities {
		if known == city {
			return true
		}
	}
	return false
}
