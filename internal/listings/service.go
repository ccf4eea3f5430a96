package listings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/enums"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
	"github.com/ishoep/pixelpage-backend/pkg/types"
)

// Article numbers are sequential display identifiers starting above the
// legacy catalog range.
const articleNumberBase = 10000

// ShopFinder is the shop lookup surface the listing flows need.
type ShopFinder interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error)
}

// ServiceParams groups dependencies for the listing service.
type ServiceParams struct {
	Repo     Repository
	ShopRepo ShopFinder
	Logger   *logger.Logger
}

// Service exposes business rules for listings and the public search surface.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateListingInput) (*ListingDTO, error)
	Update(ctx context.Context, ownerID, listingID uuid.UUID, input UpdateListingInput) (*ListingDTO, error)
	Delete(ctx context.Context, ownerID, listingID uuid.UUID) error
	GetByID(ctx context.Context, listingID uuid.UUID) (*ListingDTO, error)
	Warehouse(ctx context.Context, ownerID uuid.UUID) ([]ListingDTO, error)
	PublicByShop(ctx context.Context, shopID uuid.UUID) ([]ListingDTO, error)
	Search(ctx context.Context, query SearchQuery) ([]ListingDTO, error)
}

type service struct {
	repo     Repository
	shopRepo ShopFinder
	logg     *logger.Logger
}

// NewService builds a listing service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing repo is required")
	}
	if params.ShopRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop repo is required")
	}
	return &service{
		repo:     params.Repo,
		shopRepo: params.ShopRepo,
		logg:     params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateListingInput) (*ListingDTO, error) {
	shop, err := s.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid listing category")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count listings")
	}

	snapshot := snapshotFromShop(shop)
	listing := &models.Listing{
		ArticleNumber: articleNumberBase + int(count),
		Name:          input.Name,
		Model:         input.Model,
		Category:      input.Category,
		Price:         input.Price,
		Quantity:      input.Quantity,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		ShopID:        shop.ID,
		ShopSnapshot:  snapshot,
		City:          cityPtr(shop.Addresses.PrimaryCity()),
		Status:        status,
		HasDelivery:   shop.HasDelivery,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create listing")
	}

	dto := ToDTO(listing)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, ownerID, listingID uuid.UUID, input UpdateListingInput) (*ListingDTO, error) {
	listing, shop, err := s.ownedListing(ctx, ownerID, listingID)
	if err != nil {
		return nil, err
	}

	// Every update re-captures the shop copy, so a listing whose snapshot
	// refresh was missed picks up the current shop details here.
	updates := map[string]any{
		"shop_snapshot": snapshotFromShop(shop),
		"city":          cityPtr(shop.Addresses.PrimaryCity()),
		"has_delivery":  shop.HasDelivery,
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing name cannot be blank")
		}
		updates["name"] = *input.Name
	}
	if input.Model != nil {
		updates["model"] = input.Model
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid listing category")
		}
		updates["category"] = *input.Category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		updates["quantity"] = *input.Quantity
	}
	if input.Description != nil {
		updates["description"] = input.Description
	}
	if input.ImageURL != nil {
		updates["image_url"] = input.ImageURL
	}
	if input.Status != nil {
		status, err := normalizeStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		updates["status"] = status
	}

	if err := s.repo.Update(ctx, listing.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update listing")
	}

	updated, err := s.repo.FindByID(ctx, listing.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload listing")
	}

	dto := ToDTO(updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, ownerID, listingID uuid.UUID) error {
	listing, _, err := s.ownedListing(ctx, ownerID, listingID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, listing.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete listing")
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, listingID uuid.UUID) (*ListingDTO, error) {
	if listingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	listing, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	dto := ToDTO(listing)
	return &dto, nil
}

func (s *service) Warehouse(ctx context.Context, ownerID uuid.UUID) ([]ListingDTO, error) {
	shop, err := s.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shop listings")
	}
	return toDTOs(items), nil
}

// PublicByShop returns the listings of an arbitrary shop for its public page.
func (s *service) PublicByShop(ctx context.Context, shopID uuid.UUID) ([]ListingDTO, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	items, err := s.repo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shop listings")
	}
	return toDTOs(items), nil
}

// Search runs the filter pipeline: a category fetch from the database, then
// term, city, delivery, and availability stages in memory.
func (s *service) Search(ctx context.Context, query SearchQuery) ([]ListingDTO, error) {
	category := query.Category
	if category == enums.ListingCategoryAll {
		category = ""
	}

	items, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch listings")
	}

	items = FilterByTerm(items, query.Term)
	items = FilterByCity(items, query.City, query.CountryWide)
	items = FilterByDelivery(items, query.Delivery)
	items = FilterByAvailability(items, query.Availability)

	return toDTOs(items), nil
}

func (s *service) ownerShop(ctx context.Context, ownerID uuid.UUID) (*models.Shop, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	shop, err := s.shopRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}

func (s *service) ownedListing(ctx context.Context, ownerID, listingID uuid.UUID) (*models.Listing, *models.Shop, error) {
	shop, err := s.ownerShop(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if listingID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	listing, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}
	if listing.ShopID != shop.ID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "listing belongs to another shop")
	}
	return listing, shop, nil
}

func normalizeStatus(status string) (string, error) {
	switch status {
	case "":
		return enums.ListingStatusOnDisplay, nil
	case enums.ListingStatusOnDisplay, enums.ListingStatusInWarehouse, enums.ListingStatusOutOfStock:
		return status, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid listing status")
}

func snapshotFromShop(shop *models.Shop) types.ShopSnapshot {
	return types.ShopSnapshot{
		ID:          shop.ID,
		Name:        shop.Name,
		Addresses:   shop.Addresses,
		HasDelivery: shop.HasDelivery,
	}
}

func cityPtr(city string) *string {
	if city == "" {
		return nil
	}
	return &city
}
