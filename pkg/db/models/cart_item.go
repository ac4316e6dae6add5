package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CartItem persists a product line with its price snapshot.
type CartItem struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID          uuid.UUID      `gorm:"column:cart_id;type:uuid;not null;index:cart_items_cart_id_idx;uniqueIndex:cart_items_cart_product_key"`
	ProductID       uuid.UUID      `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_items_cart_product_key"`
	Quantity        int            `gorm:"column:quantity;not null"`
	Price           int64          `gorm:"column:price;not null"`
	SelectedOptions pq.StringArray `gorm:"column:selected_options;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
