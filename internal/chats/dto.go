package chats

import (
	"time"

	"github.com/google/uuid"

	"github.com/ishoep/pixelpage-backend/pkg/db/models"
)

// ChatDTO is the public projection of a chat thread.
type ChatDTO struct {
	ID        uuid.UUID `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	SellerID  uuid.UUID `json:"seller_id"`
	ListingID uuid.UUID `json:"listing_id"`
	// IsOwner marks threads where the requesting user is the seller, so the
	// chat list can split incoming inquiries from the user's own.
	IsOwner   bool      `json:"is_owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessagePageDTO is one page of a thread's history plus the cursor for
// the next page, empty when the thread is exhausted.
type MessagePageDTO struct {
	Messages   []MessageDTO `json:"messages"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// MessageDTO is the public projection of a chat message.
type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func chatToDTO(chat *models.Chat) ChatDTO {
	return ChatDTO{
		ID:        chat.ID,
		BuyerID:   chat.BuyerID,
		SellerID:  chat.SellerID,
		ListingID: chat.ListingID,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}

func messageToDTO(message *models.Message) MessageDTO {
	return MessageDTO{
		ID:        message.ID,
		ChatID:    message.ChatID,
		SenderID:  message.SenderID,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
}
