package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
	"github.com/hamzarauf/foodio-backend/pkg/logger"
	"gorm.io/gorm"
)

type productNamer interface {
	FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Service exposes the order history reader.
type Service interface {
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
}

type service struct {
	repo    Repository
	catalog productNamer
	logg    *logger.Logger
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, catalog productNamer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: repo, catalog: catalog, logg: logg}, nil
}

// ListOrders returns the user's past orders, newest first. An order whose
// payment row cannot be loaded is reported with amount_available=false
// rather than dropped from the listing.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	records, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	result := make([]OrderDTO, 0, len(records))
	for _, record := range records {
		dto := OrderDTO{
			ID:        record.ID,
			Status:    record.Status,
			OrderDate: record.OrderDate,
		}

		payment, err := s.repo.FindPaymentByID(ctx, record.PaymentID)
		switch {
		case err == nil:
			dto.Amount = payment.Amount
			dto.AmountAvailable = true
			dto.PaymentMethod = payment.Method
		case errors.Is(err, gorm.ErrRecordNotFound):
			// A genuinely missing payment row is a data defect on one
			// order, not a reason to drop it from the listing.
			if s.logg != nil {
				s.logg.Warn(s.logg.WithOrderID(ctx, record.ID.String()), "payment record missing for order")
			}
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
		}

		items, err := s.loadItems(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		dto.Items = items

		result = append(result, dto)
	}
	return result, nil
}

func (s *service) loadItems(ctx context.Context, orderID uuid.UUID) ([]OrderItemDTO, error) {
	rows, err := s.repo.ListHistoryByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	names, err := s.catalog.FindNamesByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve product names")
	}

	items := make([]OrderItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, OrderItemDTO{
			ProductID:   row.ProductID,
			ProductName: names[row.ProductID],
			Quantity:    row.Quantity,
			Price:       row.Price,
		})
	}
	return items, nil
}
