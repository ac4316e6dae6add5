package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/internal/cart"
	"github.com/hamzarauf/foodio-backend/internal/orders"
	"github.com/hamzarauf/foodio-backend/pkg/config"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	"github.com/hamzarauf/foodio-backend/pkg/enums"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
	"github.com/hamzarauf/foodio-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes the cart-to-order transaction.
type Service interface {
	Quote(ctx context.Context, userID uuid.UUID) (*QuoteDTO, error)
	PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*ReceiptDTO, error)
}

type service struct {
	tx           txRunner
	cartRepo     cart.Repository
	ordersRepo   orders.Repository
	discountRate decimal.Decimal
	deliveryFee  int64
	metrics      *metrics.CheckoutMetrics
	now          func() time.Time
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartRepo cart.Repository,
	ordersRepo orders.Repository,
	cfg config.CheckoutConfig,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if cartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if ordersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	rate, err := decimal.NewFromString(cfg.DiscountRate)
	if err != nil || rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount rate must be a decimal in [0, 1)")
	}
	if cfg.DeliveryCharge < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery charge cannot be negative")
	}
	return &service{
		tx:           tx,
		cartRepo:     cartRepo,
		ordersRepo:   ordersRepo,
		discountRate: rate,
		deliveryFee:  cfg.DeliveryCharge,
		metrics:      checkoutMetrics,
		now:          time.Now,
	}, nil
}

// Quote computes the price breakdown for the user's current cart. The
// discount is derived from the subtotal with exact decimal arithmetic and
// rounded half-up to whole rupees.
func (s *service) Quote(ctx context.Context, userID uuid.UUID) (*QuoteDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	record, err := s.findCart(ctx, s.cartRepo, userID)
	if err != nil {
		return nil, err
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}
	return s.quoteFor(record), nil
}

func (s *service) quoteFor(record *models.Cart) *QuoteDTO {
	subtotal := int64(0)
	for _, item := range record.Items {
		subtotal += item.Price * int64(item.Quantity)
	}

	discount := decimal.NewFromInt(subtotal).
		Mul(s.discountRate).
		Round(0).
		IntPart()

	return &QuoteDTO{
		Subtotal:       subtotal,
		Discount:       discount,
		DeliveryCharge: s.deliveryFee,
		GrandTotal:     subtotal - discount + s.deliveryFee,
	}
}

// PlaceOrder converts the cart into a payment, an order, and an archived
// item set, then clears the cart. All five steps run inside one database
// transaction; a failure at any step leaves no partial state behind.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*ReceiptDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	started := s.now()
	var receipt *ReceiptDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		record, err := s.findCart(ctx, cartRepo, userID)
		if err != nil {
			return err
		}
		if len(record.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
		}

		quote := s.quoteFor(record)
		if input.ExpectedTotal != 0 && input.ExpectedTotal != quote.GrandTotal {
			return pkgerrors.New(pkgerrors.CodeConflict, "submitted total does not match the current cart").
				WithDetails(map[string]any{"expected": quote.GrandTotal, "submitted": input.ExpectedTotal})
		}

		payment, err := ordersRepo.CreatePayment(ctx, &models.Payment{
			CartID: record.ID,
			Amount: quote.GrandTotal,
			Method: input.Method,
			Status: enums.ForMethod(input.Method),
		})
		if err != nil {
			return failAt(StateCartReady, err)
		}

		order, err := ordersRepo.CreateOrder(ctx, &models.Order{
			PaymentID: payment.ID,
			UserID:    userID,
			Status:    enums.OrderStatusProcessing,
			OrderDate: s.now().UTC(),
		})
		if err != nil {
			return failAt(StatePaymentRecorded, err)
		}

		archive := make([]models.CartHistory, 0, len(record.Items))
		for _, item := range record.Items {
			archive = append(archive, models.CartHistory{
				OrderID:         order.ID,
				CartID:          record.ID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				Price:           item.Price,
				SelectedOptions: item.SelectedOptions,
			})
		}
		if err := ordersRepo.ArchiveCartItems(ctx, archive); err != nil {
			return failAt(StateOrderRecorded, err)
		}

		if err := cartRepo.DeleteAllItems(ctx, record.ID); err != nil {
			return failAt(StateHistoryArchived, err)
		}
		if _, err := cartRepo.RecomputeTotal(ctx, record.ID); err != nil {
			return failAt(StateCartCleared, err)
		}

		receipt = &ReceiptDTO{
			OrderID:       order.ID,
			PaymentID:     payment.ID,
			Amount:        payment.Amount,
			Method:        payment.Method,
			PaymentStatus: payment.Status,
			OrderStatus:   order.Status,
			OrderDate:     order.OrderDate,
		}
		return nil
	})
	if err != nil {
		var step *StepError
		if errors.As(err, &step) {
			s.metrics.IncFailure(string(step.State))
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout failed").
				WithDetails(map[string]any{"step": string(step.State)})
		}
		return nil, err
	}

	s.metrics.IncPlaced(input.Method.String())
	s.metrics.ObserveDuration(input.Method.String(), s.now().Sub(started))
	return receipt, nil
}

func (s *service) findCart(ctx context.Context, repo cart.Repository, userID uuid.UUID) (*models.Cart, error) {
	record, err := repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return record, nil
}
