package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a buyer/seller thread scoped to one listing. The triple unique
// index guarantees at most one thread per (buyer, seller, listing).
type Chat struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerID   uuid.UUID `gorm:"column:buyer_id;type:uuid;not null;index:chats_buyer_id_idx;uniqueIndex:chats_buyer_seller_listing_key"`
	SellerID  uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index:chats_seller_id_idx;uniqueIndex:chats_buyer_seller_listing_key"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;uniqueIndex:chats_buyer_seller_listing_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
