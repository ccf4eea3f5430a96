package listings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/types"
)

// Repository manages persistence for listings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, listing *models.Listing) error
	CountAll(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCategory(ctx context.Context, category string) ([]models.Listing, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Listing, error)
	ListIDsByShop(ctx context.Context, shopID uuid.UUID) ([]uuid.UUID, error)
	UpdateShopDetails(ctx context.Context, listingID uuid.UUID, snapshot types.ShopSnapshot, city *string, hasDelivery bool) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a listing repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Listing{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Listing{}, "id = ?", id).Error
}

// ListByCategory is the only filter pushed down to the database; the rest of
// the search pipeline runs in memory over this result. An empty category
// returns the whole board. Order is newest first and stable across stages.
func (r *repository) ListByCategory(ctx context.Context, category string) ([]models.Listing, error) {
	query := r.db.WithContext(ctx).Model(&models.Listing{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.Listing
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Listing, error) {
	var items []models.Listing
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListIDsByShop(ctx context.Context, shopID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("shop_id = ?", shopID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) UpdateShopDetails(ctx context.Context, listingID uuid.UUID, snapshot types.ShopSnapshot, city *string, hasDelivery bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", listingID).
		Updates(map[string]any{
			"shop_snapshot": snapshot,
			"city":          city,
			"has_delivery":  hasDelivery,
		}).
		Error
}
