package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamzarauf/foodio-backend/pkg/enums"
)

// Payment records the charge captured when a cart is placed as an order.
type Payment struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID           `gorm:"column:cart_id;type:uuid;not null"`
	Amount    int64               `gorm:"column:payment_amount;not null"`
	Method    enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null"`
	Status    enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
