package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ishoep/pixelpage-backend/pkg/enums"
)

// Task is a workshop job tracked by a shop. Status and Completed are
// independent: a task keeps its status tab after being marked done.
type Task struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID    uuid.UUID        `gorm:"column:shop_id;type:uuid;not null;index:tasks_shop_id_idx"`
	Title     string           `gorm:"column:title;type:varchar(255);not null"`
	Client    string           `gorm:"column:client;type:varchar(255);not null"`
	Price     decimal.Decimal  `gorm:"column:price;type:numeric(14,2);not null"`
	Status    enums.TaskStatus `gorm:"column:status;type:varchar(32);not null;index:tasks_status_idx"`
	Completed bool             `gorm:"column:completed;not null;default:false"`
	DueAt     *time.Time       `gorm:"column:due_at"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
