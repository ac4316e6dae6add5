package favorites

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates favourite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favourites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a favourite and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO favourites (id, user_id, product_id) VALUES (?, ?, ?) ON CONFLICT (user_id, product_id) DO NOTHING`, uuid.New(), userID, productID).
		Error
}

// RemoveItem deletes the user-product like if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favourite{}).
		Error
}

// ListItems returns the user's liked products, newest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID) ([]FavouriteRow, error) {
	var rows []FavouriteRow
	err := r.db.WithContext(ctx).
		Table("favourites f").
		Select("f.product_id, p.name, p.category, p.price, p.image_url, p.rating, f.created_at AS liked_at").
		Joins("JOIN products p ON p.id = f.product_id").
		Where("f.user_id = ?", userID).
		Order("f.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FavouriteRow is a liked product joined with its listing fields.
type FavouriteRow struct {
	ProductID uuid.UUID `gorm:"column:product_id" json:"product_id"`
	Name      string    `gorm:"column:name" json:"name"`
	Category  string    `gorm:"column:category" json:"category"`
	Price     int64     `gorm:"column:price" json:"price"`
	ImageURL  *string   `gorm:"column:image_url" json:"image_url,omitempty"`
	Rating    *float64  `gorm:"column:rating" json:"rating,omitempty"`
	LikedAt   time.Time `gorm:"column:liked_at" json:"liked_at"`
}
