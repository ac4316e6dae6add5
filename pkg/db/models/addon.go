package models

import (
	"time"

	"github.com/google/uuid"
)

// Addon groups the selectable extras attached to a product.
type Addon struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID     `gorm:"column:product_id;type:uuid;not null;index:addons_product_id_idx"`
	Name      string        `gorm:"column:name;not null"`
	Options   []AddonOption `gorm:"foreignKey:AddonID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
}
