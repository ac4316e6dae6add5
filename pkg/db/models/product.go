package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a menu listing.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Category    string    `gorm:"column:category;not null;index:products_category_idx"`
	Price       int64     `gorm:"column:price;not null"`
	ImageURL    *string   `gorm:"column:image_url"`
	Rating      *float64  `gorm:"column:rating;type:numeric(3,2)"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	Addons      []Addon   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
