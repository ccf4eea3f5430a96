package shops

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
	"github.com/ishoep/pixelpage-backend/pkg/types"
)

// ListingFanout is the listing surface the shop-update propagation needs.
// Every listing carries a denormalized copy of its shop, so profile edits
// fan out to each row instead of being joined at read time.
type ListingFanout interface {
	ListIDsByShop(ctx context.Context, shopID uuid.UUID) ([]uuid.UUID, error)
	UpdateShopDetails(ctx context.Context, listingID uuid.UUID, snapshot types.ShopSnapshot, city *string, hasDelivery bool) error
}

// ServiceParams groups dependencies for the shop service.
type ServiceParams struct {
	Repo        Repository
	ListingRepo ListingFanout
	Logger      *logger.Logger
}

// Service exposes business rules for shop profiles.
type Service interface {
	GetByID(ctx context.Context, shopID uuid.UUID) (*ShopDTO, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*ShopDTO, error)
	Upsert(ctx context.Context, ownerID uuid.UUID, input UpsertShopInput) (*ShopDTO, error)
}

type service struct {
	repo        Repository
	listingRepo ListingFanout
	logg        *logger.Logger
}

// NewService builds a shop service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop repo is required")
	}
	if params.ListingRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing repo is required")
	}
	return &service{
		repo:        params.Repo,
		listingRepo: params.ListingRepo,
		logg:        params.Logger,
	}, nil
}

func (s *service) GetByID(ctx context.Context, shopID uuid.UUID) (*ShopDTO, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	dto := ToDTO(shop)
	return &dto, nil
}

func (s *service) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*ShopDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	shop, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	dto := ToDTO(shop)
	return &dto, nil
}

// Upsert creates the owner's shop on first save and updates it afterwards.
// After an update every listing of the shop gets its denormalized snapshot,
// city, and delivery flag rewritten.
func (s *service) Upsert(ctx context.Context, ownerID uuid.UUID, input UpsertShopInput) (*ShopDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}

	existing, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}

	if existing == nil {
		shop := &models.Shop{
			OwnerID:     ownerID,
			Name:        input.Name,
			Phone:       input.Phone,
			Email:       input.Email,
			Telegram:    input.Telegram,
			Website:     input.Website,
			Description: input.Description,
			Addresses:   input.Addresses,
			HasDelivery: input.HasDelivery,
		}
		if err := s.repo.Create(ctx, shop); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
		}
		dto := ToDTO(shop)
		return &dto, nil
	}

	updates := map[string]any{
		"name":         input.Name,
		"phone":        input.Phone,
		"email":        input.Email,
		"telegram":     input.Telegram,
		"website":      input.Website,
		"description":  input.Description,
		"addresses":    input.Addresses,
		"has_delivery": input.HasDelivery,
	}
	if err := s.repo.Update(ctx, existing.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}

	shop, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload shop")
	}

	// The shop row is already committed here. Snapshot refresh failures
	// leave stale listing copies behind, which a later listing update
	// repairs, so they are logged rather than turned into an upsert error.
	s.refreshListingSnapshots(ctx, shop)

	dto := ToDTO(shop)
	return &dto, nil
}

// refreshListingSnapshots rewrites the shop copy on every listing. Failures
// on individual rows are collected and logged so a single bad row does not
// hide the others; the caller never sees them.
func (s *service) refreshListingSnapshots(ctx context.Context, shop *models.Shop) {
	ids, err := s.listingRepo.ListIDsByShop(ctx, shop.ID)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "list shop listings for snapshot refresh", err)
		}
		return
	}

	snapshot := types.ShopSnapshot{
		ID:          shop.ID,
		Name:        shop.Name,
		Addresses:   shop.Addresses,
		HasDelivery: shop.HasDelivery,
	}
	var city *string
	if c := shop.Addresses.PrimaryCity(); c != "" {
		city = &c
	}

	var combined error
	for _, id := range ids {
		if err := s.listingRepo.UpdateShopDetails(ctx, id, snapshot, city, shop.HasDelivery); err != nil {
			combined = multierr.Append(combined, err)
		}
	}
	if combined != nil && s.logg != nil {
		s.logg.Error(ctx, "refresh listing snapshots", combined)
	}
}
