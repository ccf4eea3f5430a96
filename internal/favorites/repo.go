package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
)

// Repository manages persistence for favorites.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Add(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListListings(ctx context.Context, userID uuid.UUID) ([]models.Listing, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a favorites repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Add inserts the pair and reports whether a new row was created. The unique
// index makes concurrent duplicate adds converge without a check-then-act
// window.
func (r *repository) Add(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || listingID == uuid.Nil {
		return false, gorm.ErrInvalidValue
	}

	result := r.db.WithContext(ctx).
		Exec(`INSERT INTO favorites (user_id, listing_id) VALUES (?, ?) ON CONFLICT (user_id, listing_id) DO NOTHING`, userID, listingID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.Favorite{}).
		Error
}

func (r *repository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListListings returns the user's saved listings, most recently saved first.
func (r *repository) ListListings(ctx context.Context, userID uuid.UUID) ([]models.Listing, error) {
	var items []models.Listing
	if err := r.db.WithContext(ctx).
		Table("listings l").
		Select("l.*").
		Joins("JOIN favorites f ON f.listing_id = l.id").
		Where("f.user_id = ?", userID).
		Order("f.created_at DESC").
		Order("f.id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
