package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence for payments, orders, and archived cart
// lines. WithTx rebinds it to a transaction handle for checkout.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	ArchiveCartItems(ctx context.Context, rows []models.CartHistory) error
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindOrderByIDAndUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	FindPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListHistoryByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CartHistory, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// ArchiveCartItems copies cart lines into cart_history. The unique pair
// (order_id, product_id) makes re-archival a no-op.
func (r *repository) ArchiveCartItems(ctx context.Context, rows []models.CartHistory) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		err := r.db.WithContext(ctx).
			Exec(`INSERT INTO cart_history (id, order_id, cart_id, product_id, quantity, price, selected_options)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (order_id, product_id) DO NOTHING`,
				rows[i].ID, rows[i].OrderID, rows[i].CartID, rows[i].ProductID, rows[i].Quantity, rows[i].Price, rows[i].SelectedOptions).
			Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindOrderByIDAndUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) ListHistoryByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CartHistory, error) {
	var rows []models.CartHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
