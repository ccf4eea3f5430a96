package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/internal/listings"
	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	pkgerrors "github.com/ishoep/pixelpage-backend/pkg/errors"
)

// ListingFinder is the listing lookup surface the favorite flows need.
type ListingFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

// AddResult reports whether Add created a new favorite or hit an existing one.
type AddResult struct {
	Added bool `json:"added"`
}

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Repo        Repository
	ListingRepo ListingFinder
}

// Service exposes business rules for saved listings.
type Service interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) (AddResult, error)
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	IsFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]listings.ListingDTO, error)
}

type service struct {
	repo        Repository
	listingRepo ListingFinder
}

// NewService builds a favorites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites repo is required")
	}
	if params.ListingRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "listing repo is required")
	}
	return &service{
		repo:        params.Repo,
		listingRepo: params.ListingRepo,
	}, nil
}

// Add saves the listing for the user. Adding twice is not an error: the
// second call reports Added=false and leaves a single row behind.
func (s *service) Add(ctx context.Context, userID, listingID uuid.UUID) (AddResult, error) {
	if err := validatePair(userID, listingID); err != nil {
		return AddResult{}, err
	}
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddResult{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
		}
		return AddResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing")
	}

	added, err := s.repo.Add(ctx, userID, listingID)
	if err != nil {
		return AddResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
	}
	return AddResult{Added: added}, nil
}

// Remove drops the favorite regardless of prior state.
func (s *service) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	if err := validatePair(userID, listingID); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, userID, listingID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
	}
	return nil
}

func (s *service) IsFavorite(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	if err := validatePair(userID, listingID); err != nil {
		return false, err
	}
	found, err := s.repo.Exists(ctx, userID, listingID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
	}
	return found, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]listings.ListingDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.repo.ListListings(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}

	out := make([]listings.ListingDTO, 0, len(items))
	for i := range items {
		out = append(out, listings.ToDTO(&items[i]))
	}
	return out, nil
}

func validatePair(userID, listingID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if listingID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	return nil
}
