package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamzarauf/foodio-backend/pkg/enums"
)

// Order links a captured payment to the user who placed it.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentID uuid.UUID         `gorm:"column:payment_id;type:uuid;not null;uniqueIndex:orders_payment_id_key"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx"`
	Status    enums.OrderStatus `gorm:"column:order_status;type:order_status;not null;default:'processing'"`
	OrderDate time.Time         `gorm:"column:order_date;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
