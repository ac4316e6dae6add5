package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes menu reads and price derivation.
type Service interface {
	ListMenu(ctx context.Context, category string) ([]ProductSummaryDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDetailDTO, error)
	DeriveUnitPrice(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*PricedSelection, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: repo}, nil
}

// ListMenu returns the active products, optionally narrowed to one category.
func (s *service) ListMenu(ctx context.Context, category string) ([]ProductSummaryDTO, error) {
	products, err := s.repo.ListProducts(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	summaries := make([]ProductSummaryDTO, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, toSummaryDTO(product))
	}
	return summaries, nil
}

// GetProduct returns a single product with its addon groups.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDetailDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	detail := toDetailDTO(*product)
	return &detail, nil
}

// DeriveUnitPrice resolves a product plus selected options into the unit
// price snapshot stored on a cart line.
func (s *service) DeriveUnitPrice(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*PricedSelection, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is not available")
	}

	options := indexOptions(product.Addons)
	unitPrice := product.Price
	optionNames := make([]string, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		option, ok := options[optionID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected option does not belong to product")
		}
		unitPrice += option.AdditionalPrice
		optionNames = append(optionNames, option.Name)
	}

	return &PricedSelection{
		Product:     product,
		UnitPrice:   unitPrice,
		OptionNames: optionNames,
	}, nil
}

func indexOptions(addons []models.Addon) map[uuid.UUID]models.AddonOption {
	options := make(map[uuid.UUID]models.AddonOption)
	for _, addon := range addons {
		for _, option := range addon.Options {
			options[option.ID] = option
		}
	}
	return options
}
