package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository defines the cart persistence surface. WithTx rebinds the
// repository to a transaction handle so checkout can reuse it atomically.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	UpsertItemAdd(ctx context.Context, item *models.CartItem) error
	UpsertItemReplace(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (int64, error)
	DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error
	DeleteAllItems(ctx context.Context, cartID uuid.UUID) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]ItemRow, error)
	RecomputeTotal(ctx context.Context, cartID uuid.UUID) (int64, error)
}

// ItemRow is a cart line joined with its product name.
type ItemRow struct {
	ID              uuid.UUID      `gorm:"column:id"`
	CartID          uuid.UUID      `gorm:"column:cart_id"`
	ProductID       uuid.UUID      `gorm:"column:product_id"`
	ProductName     string         `gorm:"column:product_name"`
	Quantity        int            `gorm:"column:quantity"`
	Price           int64          `gorm:"column:price"`
	SelectedOptions pq.StringArray `gorm:"column:selected_options"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// GetOrCreate returns the user's cart, creating it exactly once. The unique
// index on carts(user_id) makes concurrent creates collapse to one row.
func (r *repository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, gorm.ErrInvalidValue
	}

	err := r.db.WithContext(ctx).
		Exec(`INSERT INTO carts (id, user_id, total_amount) VALUES (?, ?, 0) ON CONFLICT (user_id) DO NOTHING`, uuid.New(), userID).
		Error
	if err != nil {
		return nil, err
	}
	return r.FindByUser(ctx, userID)
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertItemAdd inserts a cart line or, when the product is already in the
// cart, adds the quantities and keeps the original price snapshot.
func (r *repository) UpsertItemAdd(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO cart_items (id, cart_id, product_id, quantity, price, selected_options)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + excluded.quantity, updated_at = CURRENT_TIMESTAMP`,
			item.ID, item.CartID, item.ProductID, item.Quantity, item.Price, item.SelectedOptions).
		Error
}

// UpsertItemReplace inserts a cart line or overwrites quantity, price, and
// options when the product is already present (last writer wins).
func (r *repository) UpsertItemReplace(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO cart_items (id, cart_id, product_id, quantity, price, selected_options)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = excluded.quantity, price = excluded.price, selected_options = excluded.selected_options, updated_at = CURRENT_TIMESTAMP`,
			item.ID, item.CartID, item.ProductID, item.Quantity, item.Price, item.SelectedOptions).
		Error
}

// UpdateItemQuantity sets the quantity on an existing line and reports how
// many rows matched.
func (r *repository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).
		Error
}

func (r *repository) DeleteAllItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).
		Error
}

// ListItems returns the cart lines in insertion order, joined with the
// product name for display.
func (r *repository) ListItems(ctx context.Context, cartID uuid.UUID) ([]ItemRow, error) {
	var rows []ItemRow
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.id, ci.cart_id, ci.product_id, p.name AS product_name, ci.quantity, ci.price, ci.selected_options").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.cart_id = ?", cartID).
		Order("ci.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RecomputeTotal derives the cart total from the full item set and persists it.
func (r *repository) RecomputeTotal(ctx context.Context, cartID uuid.UUID) (int64, error) {
	err := r.db.WithContext(ctx).
		Exec(`UPDATE carts
SET total_amount = COALESCE((SELECT SUM(ci.price * ci.quantity) FROM cart_items ci WHERE ci.cart_id = carts.id), 0),
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?`, cartID).
		Error
	if err != nil {
		return 0, err
	}

	var total int64
	err = r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Select("total_amount").
		Where("id = ?", cartID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
