package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/internal/catalog"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type priceDeriver interface {
	DeriveUnitPrice(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*catalog.PricedSelection, error)
}

// Service exposes business rules for cart management.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error)
	SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
}

type service struct {
	tx      txRunner
	repo    Repository
	catalog priceDeriver
}

// NewService builds a cart service with the required dependencies.
func NewService(tx txRunner, repo Repository, catalogSvc priceDeriver) (Service, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if catalogSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog service is required")
	}
	return &service{tx: tx, repo: repo, catalog: catalogSvc}, nil
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	record, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return s.buildView(ctx, s.repo, record.ID, record.TotalAmount)
}

// AddItem derives the unit price for the selection, merges it into the cart,
// and recomputes the stored total inside one transaction.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quantity")
	}

	selection, err := s.catalog.DeriveUnitPrice(ctx, input.ProductID, input.OptionIDs)
	if err != nil {
		return nil, err
	}

	var view *CartDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.GetOrCreate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		item := &models.CartItem{
			CartID:          record.ID,
			ProductID:       input.ProductID,
			Quantity:        input.Quantity,
			Price:           selection.UnitPrice,
			SelectedOptions: pq.StringArray(selection.OptionNames),
		}
		if err := repo.UpsertItemAdd(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart item")
		}

		total, err := repo.RecomputeTotal(ctx, record.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute cart total")
		}

		view, err = s.buildView(ctx, repo, record.ID, total)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SetItemQuantity replaces the quantity on an existing line, keeping its
// price snapshot, and recomputes the total.
func (s *service) SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quantity")
	}

	var view *CartDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := s.findCart(ctx, repo, userID)
		if err != nil {
			return err
		}

		affected, err := repo.UpdateItemQuantity(ctx, record.ID, productID, quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}

		total, err := repo.RecomputeTotal(ctx, record.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute cart total")
		}

		view, err = s.buildView(ctx, repo, record.ID, total)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveItem drops the product line if present and recomputes the total.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	var view *CartDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := s.findCart(ctx, repo, userID)
		if err != nil {
			return err
		}

		if err := repo.DeleteItem(ctx, record.ID, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
		}

		total, err := repo.RecomputeTotal(ctx, record.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute cart total")
		}

		view, err = s.buildView(ctx, repo, record.ID, total)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) findCart(ctx context.Context, repo Repository, userID uuid.UUID) (*models.Cart, error) {
	record, err := repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return record, nil
}

func (s *service) buildView(ctx context.Context, repo Repository, cartID uuid.UUID, total int64) (*CartDTO, error) {
	rows, err := repo.ListItems(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return toCartDTO(cartID, rows, total), nil
}
