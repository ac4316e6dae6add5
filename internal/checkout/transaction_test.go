package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hamzarauf/foodio-backend/internal/cart"
	"github.com/hamzarauf/foodio-backend/internal/orders"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	"github.com/hamzarauf/foodio-backend/pkg/enums"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
)

// gormTxRunner drives the checkout chain through a real transaction so a
// mid-chain failure rolls every step back.
type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// archiveFailRepo delegates to the real orders repository but errors on the
// history-archive step.
type archiveFailRepo struct {
	orders.Repository
	err error
}

func (r archiveFailRepo) WithTx(tx *gorm.DB) orders.Repository {
	return archiveFailRepo{Repository: r.Repository.WithTx(tx), err: r.err}
}

func (r archiveFailRepo) ArchiveCartItems(ctx context.Context, rows []models.CartHistory) error {
	return r.err
}

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_amount INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS carts_user_key ON carts (user_id);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price INTEGER NOT NULL,
  selected_options TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS cart_items_cart_product_key
  ON cart_items (cart_id, product_id);`,
		`CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  payment_amount INTEGER NOT NULL,
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  payment_id TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  order_status TEXT NOT NULL DEFAULT 'processing',
  order_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_history (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price INTEGER NOT NULL,
  selected_options TEXT,
  created_at DATETIME
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS cart_history_order_product_key
  ON cart_history (order_id, product_id);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedSettledCart(t *testing.T, db *gorm.DB, cartRepo cart.Repository, userID uuid.UUID) uuid.UUID {
	t.Helper()

	record, err := cartRepo.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)

	require.NoError(t, cartRepo.UpsertItemAdd(context.Background(), &models.CartItem{
		CartID:          record.ID,
		ProductID:       uuid.New(),
		Quantity:        2,
		Price:           250,
		SelectedOptions: pq.StringArray{"Extra Cheese"},
	}))
	require.NoError(t, cartRepo.UpsertItemAdd(context.Background(), &models.CartItem{
		CartID:    record.ID,
		ProductID: uuid.New(),
		Quantity:  1,
		Price:     100,
	}))

	total, err := cartRepo.RecomputeTotal(context.Background(), record.ID)
	require.NoError(t, err)
	require.EqualValues(t, 600, total)
	return record.ID
}

func cartTotal(t *testing.T, db *gorm.DB, cartID uuid.UUID) int64 {
	t.Helper()

	var total int64
	require.NoError(t, db.Model(&models.Cart{}).
		Select("total_amount").
		Where("id = ?", cartID).
		Scan(&total).Error)
	return total
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

func TestPlaceOrderCommitsAllRows(t *testing.T) {
	db := setupCheckoutTestDB(t)
	cartRepo := cart.NewRepository(db)
	ordersRepo := orders.NewRepository(db)
	userID := uuid.New()
	cartID := seedSettledCart(t, db, cartRepo, userID)

	service, err := NewService(gormTxRunner{db: db}, cartRepo, ordersRepo, testCheckoutConfig(), nil)
	require.NoError(t, err)

	receipt, err := service.PlaceOrder(context.Background(), userID, PlaceOrderInput{
		Method:        enums.PaymentMethodCash,
		ExpectedTotal: 640,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1, countRows(t, db, &models.Payment{}, "id = ?", receipt.PaymentID))
	assert.EqualValues(t, 1, countRows(t, db, &models.Order{}, "id = ? AND user_id = ?", receipt.OrderID, userID))
	assert.EqualValues(t, 2, countRows(t, db, &models.CartHistory{}, "order_id = ?", receipt.OrderID))
	assert.EqualValues(t, 0, countRows(t, db, &models.CartItem{}, "cart_id = ?", cartID))
	assert.EqualValues(t, 0, cartTotal(t, db, cartID))

	payment, err := ordersRepo.FindPaymentByID(context.Background(), receipt.PaymentID)
	require.NoError(t, err)
	assert.EqualValues(t, 640, payment.Amount)
	assert.Equal(t, enums.PaymentStatusCompleted, payment.Status)
}

func TestPlaceOrderRollsBackOnArchiveFailure(t *testing.T) {
	db := setupCheckoutTestDB(t)
	cartRepo := cart.NewRepository(db)
	ordersRepo := archiveFailRepo{
		Repository: orders.NewRepository(db),
		err:        errors.New("history insert refused"),
	}
	userID := uuid.New()
	cartID := seedSettledCart(t, db, cartRepo, userID)

	service, err := NewService(gormTxRunner{db: db}, cartRepo, ordersRepo, testCheckoutConfig(), nil)
	require.NoError(t, err)

	_, err = service.PlaceOrder(context.Background(), userID, PlaceOrderInput{
		Method:        enums.PaymentMethodCash,
		ExpectedTotal: 640,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(StateOrderRecorded), details["step"])

	// The payment and order written before the failing step must be gone.
	assert.EqualValues(t, 0, countRows(t, db, &models.Payment{}, "cart_id = ?", cartID))
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}, "user_id = ?", userID))
	assert.EqualValues(t, 0, countRows(t, db, &models.CartHistory{}, "cart_id = ?", cartID))
	assert.EqualValues(t, 2, countRows(t, db, &models.CartItem{}, "cart_id = ?", cartID))
	assert.EqualValues(t, 600, cartTotal(t, db, cartID))
}
