package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates product catalog reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns active products, optionally filtered by category.
func (r *Repository) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC")
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		query = query.Where("category = ?", trimmed)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads a product with its addon groups and options.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Addons.Options").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBasePricesByIDs resolves current base prices for the given identifiers.
// Inactive products are excluded.
func (r *Repository) FindBasePricesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	prices := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	type row struct {
		ID    uuid.UUID `gorm:"column:id"`
		Price int64     `gorm:"column:price"`
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id", "price").
		Where("id IN ? AND is_active = ?", ids, true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, record := range rows {
		prices[record.ID] = record.Price
	}
	return prices, nil
}

// FindNamesByIDs resolves product names for the given identifiers.
func (r *Repository) FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	type row struct {
		ID   uuid.UUID `gorm:"column:id"`
		Name string    `gorm:"column:name"`
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id", "name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, record := range rows {
		names[record.ID] = record.Name
	}
	return names, nil
}
