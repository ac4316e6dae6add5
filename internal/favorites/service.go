package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/internal/catalog"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes business rules for favourites management.
type Service interface {
	ListFavourites(ctx context.Context, userID uuid.UUID) ([]FavouriteRow, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	repo        *Repository
	catalogRepo *catalog.Repository
}

// NewService builds a favourites service with the required dependencies.
func NewService(repo *Repository, catalogRepo *catalog.Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favourites repo is required")
	}
	if catalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: repo, catalogRepo: catalogRepo}, nil
}

// ListFavourites returns the user's liked products.
func (s *service) ListFavourites(ctx context.Context, userID uuid.UUID) ([]FavouriteRow, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favourites")
	}
	return rows, nil
}

// AddItem ensures the product exists and likes it.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.catalogRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return s.repo.AddItem(ctx, userID, productID)
}

// RemoveItem drops the like regardless of prior state.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.repo.RemoveItem(ctx, userID, productID)
}
