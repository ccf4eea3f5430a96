package chats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
	"github.com/ishoep/pixelpage-backend/pkg/pagination"
)

// Repository manages persistence for chats and their messages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetOrCreate(ctx context.Context, buyerID, sellerID, listingID uuid.UUID) (*models.Chat, bool, error)
	FindByID(ctx context.Context, chatID uuid.UUID) (*models.Chat, error)
	TouchUpdatedAt(ctx context.Context, chatID uuid.UUID, at time.Time) error
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, chatID uuid.UUID, after *pagination.Cursor, limit int) ([]models.Message, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a chat repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// GetOrCreate returns the single thread for the triple, creating it when
// absent. Concurrent creators race on the unique index: the loser reloads
// the winner's row, so both callers observe the same chat id.
func (r *repository) GetOrCreate(ctx context.Context, buyerID, sellerID, listingID uuid.UUID) (*models.Chat, bool, error) {
	if buyerID == uuid.Nil || sellerID == uuid.Nil || listingID == uuid.Nil {
		return nil, false, gorm.ErrInvalidValue
	}

	var existing models.Chat
	err := r.db.WithContext(ctx).
		First(&existing, "buyer_id = ? AND seller_id = ? AND listing_id = ?", buyerID, sellerID, listingID).
		Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	chat := models.Chat{BuyerID: buyerID, SellerID: sellerID, ListingID: listingID}
	result := r.db.WithContext(ctx).
		Exec(`INSERT INTO chats (buyer_id, seller_id, listing_id) VALUES (?, ?, ?) ON CONFLICT (buyer_id, seller_id, listing_id) DO NOTHING`,
			chat.BuyerID, chat.SellerID, chat.ListingID)
	if result.Error != nil {
		return nil, false, result.Error
	}

	var created models.Chat
	if err := r.db.WithContext(ctx).
		First(&created, "buyer_id = ? AND seller_id = ? AND listing_id = ?", buyerID, sellerID, listingID).
		Error; err != nil {
		return nil, false, err
	}
	return &created, result.RowsAffected > 0, nil
}

func (r *repository) FindByID(ctx context.Context, chatID uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.WithContext(ctx).First(&chat, "id = ?", chatID).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *repository) TouchUpdatedAt(ctx context.Context, chatID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", at).
		Error
}

func (r *repository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListMessages pages through a thread oldest-first. The (created_at, id)
// keyset keeps the walk stable when two messages share a timestamp.
func (r *repository) ListMessages(ctx context.Context, chatID uuid.UUID, after *pagination.Cursor, limit int) ([]models.Message, error) {
	query := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Order("id ASC")
	if after != nil {
		query = query.Where(
			"created_at > ? OR (created_at = ? AND id > ?)",
			after.Timestamp, after.Timestamp, after.ID,
		)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	var chats []models.Chat
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&chats).Error; err != nil {
		return nil, err
	}
	return chats, nil
}
