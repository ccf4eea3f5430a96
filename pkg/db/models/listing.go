package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/pkg/enums"
	"github.com/ishoep/pixelpage-backend/pkg/types"
)

// Listing represents a classifieds item on the board. City, HasDelivery and
// ShopSnapshot are denormalized copies of shop data taken at create/update
// time and refreshed only by the shop-update fan-out.
type Listing struct {
	ID            uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ArticleNumber int                   `gorm:"column:article_number;not null"`
	Name          string                `gorm:"column:name;not null"`
	Model         *string               `gorm:"column:model"`
	Category      enums.ListingCategory `gorm:"column:category;not null;index"`
	Price         decimal.Decimal       `gorm:"column:price;type:numeric(14,2);not null"`
	Quantity      int                   `gorm:"column:quantity;not null;default:0"`
	Description   *string               `gorm:"column:description"`
	ImageURL      *string               `gorm:"column:image_url"`
	ShopID        uuid.UUID             `gorm:"column:shop_id;type:uuid;not null;index"`
	ShopSnapshot  types.ShopSnapshot    `gorm:"column:shop_snapshot;type:jsonb;not null;default:'{}'"`
	City          *string               `gorm:"column:city"`
	Status        string                `gorm:"column:status;not null;default:''"`
	HasDelivery   bool                  `gorm:"column:has_delivery;not null;default:false"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
