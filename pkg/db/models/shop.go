package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ishoep/pixelpage-backend/pkg/types"
)

// Shop is a user's storefront. Each user owns at most one shop and shops are
// never deleted, only updated in place.
type Shop struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID         `gorm:"column:owner_id;type:uuid;not null;uniqueIndex"`
	Name        string            `gorm:"column:name;not null"`
	Phone       *string           `gorm:"column:phone"`
	Email       *string           `gorm:"column:email"`
	Telegram    *string           `gorm:"column:telegram"`
	Website     *string           `gorm:"column:website"`
	Description *string           `gorm:"column:description"`
	Addresses   types.AddressList `gorm:"column:addresses;type:jsonb;not null;default:'[]'"`
	HasDelivery bool              `gorm:"column:has_delivery;not null;default:false"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
