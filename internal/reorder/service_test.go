package reorder

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hamzarauf/foodio-backend/internal/cart"
	"github.com/hamzarauf/foodio-backend/internal/orders"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	"github.com/hamzarauf/foodio-backend/pkg/enums"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
)

func TestReorderRepricesAtCurrentBasePrice(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	orderID := uuid.New()
	productID := uuid.New()

	ordersRepo := &stubOrderReader{
		order: &models.Order{ID: orderID, UserID: userID, Status: enums.OrderStatusDelivered, OrderDate: time.Now().UTC()},
		history: []models.CartHistory{
			{OrderID: orderID, ProductID: productID, Quantity: 2, Price: 200, SelectedOptions: []string{"Large"}},
		},
	}
	cartRepo := newMemCartRepo()
	pricer := stubBasePricer{productID: 250}

	service, err := NewService(stubTx{}, ordersRepo, cartRepo, pricer)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	result, err := service.Reorder(context.Background(), userID, orderID)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	if result.ItemCount != 1 || result.Skipped != 0 {
		t.Fatalf("expected 1 copied and 0 skipped, got %+v", result)
	}
	// Re-priced at 250 rather than the archived 200.
	if result.TotalAmount != 500 {
		t.Fatalf("expected total 500, got %d", result.TotalAmount)
	}

	line := cartRepo.lines[productID]
	if line == nil || line.Price != 250 {
		t.Fatalf("expected line priced at 250, got %+v", line)
	}
	if len(line.SelectedOptions) != 1 || line.SelectedOptions[0] != "Large" {
		t.Fatalf("expected archived options to carry over, got %v", line.SelectedOptions)
	}
}

func TestReorderOverwritesExistingLine(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	orderID := uuid.New()
	productID := uuid.New()

	ordersRepo := &stubOrderReader{
		order: &models.Order{ID: orderID, UserID: userID},
		history: []models.CartHistory{
			{OrderID: orderID, ProductID: productID, Quantity: 2, Price: 100},
		},
	}
	cartRepo := newMemCartRepo()
	cartRepo.lines[productID] = &models.CartItem{ProductID: productID, Quantity: 5, Price: 80}

	service, err := NewService(stubTx{}, ordersRepo, cartRepo, stubBasePricer{productID: 100})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	result, err := service.Reorder(context.Background(), userID, orderID)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	line := cartRepo.lines[productID]
	if line.Quantity != 2 {
		t.Fatalf("expected quantity overwritten to 2, got %d", line.Quantity)
	}
	if result.TotalAmount != 200 {
		t.Fatalf("expected total 200, got %d", result.TotalAmount)
	}
}

func TestReorderSkipsUnavailableProducts(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	orderID := uuid.New()
	available := uuid.New()
	discontinued := uuid.New()

	ordersRepo := &stubOrderReader{
		order: &models.Order{ID: orderID, UserID: userID},
		history: []models.CartHistory{
			{OrderID: orderID, ProductID: available, Quantity: 1, Price: 300},
			{OrderID: orderID, ProductID: discontinued, Quantity: 2, Price: 150},
		},
	}
	cartRepo := newMemCartRepo()

	service, err := NewService(stubTx{}, ordersRepo, cartRepo, stubBasePricer{available: 300})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	result, err := service.Reorder(context.Background(), userID, orderID)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	if result.ItemCount != 1 || result.Skipped != 1 {
		t.Fatalf("expected 1 copied and 1 skipped, got %+v", result)
	}
	if _, ok := cartRepo.lines[discontinued]; ok {
		t.Fatal("discontinued product must not be added to the cart")
	}
}

func TestReorderUnknownOrder(t *testing.T) {
	t.Parallel()

	service, err := NewService(stubTx{}, &stubOrderReader{}, newMemCartRepo(), stubBasePricer{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = service.Reorder(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestReorderEmptyArchive(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	orderID := uuid.New()

	ordersRepo := &stubOrderReader{order: &models.Order{ID: orderID, UserID: userID}}
	service, err := NewService(stubTx{}, ordersRepo, newMemCartRepo(), stubBasePricer{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = service.Reorder(context.Background(), userID, orderID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubBasePricer map[uuid.UUID]int64

func (s stubBasePricer) FindBasePricesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	return s, nil
}

type stubOrderReader struct {
	order   *models.Order
	history []models.CartHistory
}

func (s *stubOrderReader) WithTx(tx *gorm.DB) orders.Repository {
	return s
}

func (s *stubOrderReader) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	return payment, nil
}

func (s *stubOrderReader) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	return order, nil
}

func (s *stubOrderReader) ArchiveCartItems(ctx context.Context, rows []models.CartHistory) error {
	return nil
}

func (s *stubOrderReader) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderReader) FindOrderByIDAndUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != orderID || s.order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrderReader) FindPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderReader) ListHistoryByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CartHistory, error) {
	return s.history, nil
}

// memCartRepo keeps one cart keyed by product id.
type memCartRepo struct {
	cartID uuid.UUID
	lines  map[uuid.UUID]*models.CartItem
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{cartID: uuid.New(), lines: map[uuid.UUID]*models.CartItem{}}
}

func (m *memCartRepo) WithTx(tx *gorm.DB) cart.Repository {
	return m
}

func (m *memCartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return &models.Cart{ID: m.cartID, UserID: userID}, nil
}

func (m *memCartRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return &models.Cart{ID: m.cartID, UserID: userID}, nil
}

func (m *memCartRepo) UpsertItemAdd(ctx context.Context, item *models.CartItem) error {
	if existing, ok := m.lines[item.ProductID]; ok {
		existing.Quantity += item.Quantity
		return nil
	}
	clone := *item
	m.lines[item.ProductID] = &clone
	return nil
}

func (m *memCartRepo) UpsertItemReplace(ctx context.Context, item *models.CartItem) error {
	clone := *item
	m.lines[item.ProductID] = &clone
	return nil
}

func (m *memCartRepo) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (int64, error) {
	if existing, ok := m.lines[productID]; ok {
		existing.Quantity = quantity
		return 1, nil
	}
	return 0, nil
}

func (m *memCartRepo) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error {
	delete(m.lines, productID)
	return nil
}

func (m *memCartRepo) DeleteAllItems(ctx context.Context, cartID uuid.UUID) error {
	m.lines = map[uuid.UUID]*models.CartItem{}
	return nil
}

func (m *memCartRepo) ListItems(ctx context.Context, cartID uuid.UUID) ([]cart.ItemRow, error) {
	rows := make([]cart.ItemRow, 0, len(m.lines))
	for _, line := range m.lines {
		rows = append(rows, cart.ItemRow{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			Price:           line.Price,
			SelectedOptions: line.SelectedOptions,
		})
	}
	return rows, nil
}

func (m *memCartRepo) RecomputeTotal(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var total int64
	for _, line := range m.lines {
		total += line.Price * int64(line.Quantity)
	}
	return total, nil
}
