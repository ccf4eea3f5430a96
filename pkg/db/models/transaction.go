package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/pkg/enums"
)

// Transaction is a single cash-flow entry in a shop's ledger.
type Transaction struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID     uuid.UUID             `gorm:"column:shop_id;type:uuid;not null;index:transactions_shop_id_idx"`
	Type       enums.TransactionType `gorm:"column:type;type:varchar(16);not null"`
	Method     enums.PaymentMethod   `gorm:"column:method;type:varchar(16);not null"`
	Amount     decimal.Decimal       `gorm:"column:amount;type:numeric(14,2);not null"`
	Category   string                `gorm:"column:category;type:varchar(128);not null"`
	Note       *string               `gorm:"column:note;type:text"`
	OccurredAt time.Time             `gorm:"column:occurred_at;not null"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
}
