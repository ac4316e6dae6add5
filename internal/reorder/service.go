package reorder

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/internal/cart"
	"github.com/hamzarauf/foodio-backend/internal/orders"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productPricer interface {
	FindBasePricesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

// Service composes a past order back into the active cart.
type Service interface {
	Reorder(ctx context.Context, userID, orderID uuid.UUID) (*ReorderResultDTO, error)
}

// ReorderResultDTO reports what was copied back into the cart.
type ReorderResultDTO struct {
	CartID      uuid.UUID `json:"cart_id"`
	ItemCount   int       `json:"item_count"`
	Skipped     int       `json:"skipped"`
	TotalAmount int64     `json:"total_amount"`
}

type service struct {
	tx         txRunner
	ordersRepo orders.Repository
	cartRepo   cart.Repository
	catalog    productPricer
}

// NewService builds a reorder service with the required dependencies.
func NewService(tx txRunner, ordersRepo orders.Repository, cartRepo cart.Repository, catalog productPricer) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if ordersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if cartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{tx: tx, ordersRepo: ordersRepo, cartRepo: cartRepo, catalog: catalog}, nil
}

// Reorder copies the archived lines of a past order into the active cart.
// Lines are re-priced at the product's current base price; a product already
// in the cart is overwritten rather than summed. Products that no longer
// exist or are inactive are skipped.
func (s *service) Reorder(ctx context.Context, userID, orderID uuid.UUID) (*ReorderResultDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	if _, err := s.ordersRepo.FindOrderByIDAndUser(ctx, orderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	archived, err := s.ordersRepo.ListHistoryByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}
	if len(archived) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items to reorder")
	}

	ids := make([]uuid.UUID, 0, len(archived))
	for _, row := range archived {
		ids = append(ids, row.ProductID)
	}
	prices, err := s.catalog.FindBasePricesByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current prices")
	}

	var result *ReorderResultDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		record, err := cartRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		copied := 0
		skipped := 0
		for _, row := range archived {
			price, ok := prices[row.ProductID]
			if !ok {
				skipped++
				continue
			}
			item := &models.CartItem{
				CartID:          record.ID,
				ProductID:       row.ProductID,
				Quantity:        row.Quantity,
				Price:           price,
				SelectedOptions: row.SelectedOptions,
			}
			if err := cartRepo.UpsertItemReplace(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart item")
			}
			copied++
		}

		total, err := cartRepo.RecomputeTotal(ctx, record.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute cart total")
		}

		result = &ReorderResultDTO{
			CartID:      record.ID,
			ItemCount:   copied,
			Skipped:     skipped,
			TotalAmount: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
