package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat message. Ordering is by CreatedAt ascending.
type Message struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ChatID    uuid.UUID `gorm:"column:chat_id;type:uuid;not null;index:messages_chat_id_idx"`
	SenderID  uuid.UUID `gorm:"column:sender_id;type:uuid;not null"`
	Body      string    `gorm:"column:body;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
