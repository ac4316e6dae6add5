package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CartHistory archives one cart line against the order that consumed it.
type CartHistory struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID      `gorm:"column:order_id;type:uuid;not null;index:cart_history_order_id_idx;uniqueIndex:cart_history_order_product_key"`
	CartID          uuid.UUID      `gorm:"column:cart_id;type:uuid;not null"`
	ProductID       uuid.UUID      `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_history_order_product_key"`
	Quantity        int            `gorm:"column:quantity;not null"`
	Price           int64          `gorm:"column:price;not null"`
	SelectedOptions pq.StringArray `gorm:"column:selected_options;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName maps the model to the cart_history table created by the
// migrations; gorm's default pluralization would look for cart_histories.
func (CartHistory) TableName() string { return "cart_history" }
