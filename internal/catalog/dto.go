package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/pkg/db/models"
)

// ProductSummaryDTO is the menu listing row.
type ProductSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddonOptionDTO is a selectable choice with its surcharge.
type AddonOptionDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	AdditionalPrice int64     `json:"additional_price"`
}

// AddonDTO groups the options shown under one heading.
type AddonDTO struct {
	ID      uuid.UUID        `json:"id"`
	Name    string           `json:"name"`
	Options []AddonOptionDTO `json:"options"`
}

// ProductDetailDTO is a single product with its addon groups.
type ProductDetailDTO struct {
	ProductSummaryDTO
	Addons []AddonDTO `json:"addons"`
}

// PricedSelection carries the derived unit price for a product plus options.
type PricedSelection struct {
	Product     *models.Product
	UnitPrice   int64
	OptionNames []string
}

func toSummaryDTO(product models.Product) ProductSummaryDTO {
	return ProductSummaryDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		Rating:      product.Rating,
		CreatedAt:   product.CreatedAt,
	}
}

func toDetailDTO(product models.Product) ProductDetailDTO {
	addons := make([]AddonDTO, 0, len(product.Addons))
	for _, addon := range product.Addons {
		options := make([]AddonOptionDTO, 0, len(addon.Options))
		for _, option := range addon.Options {
			options = append(options, AddonOptionDTO{
				ID:              option.ID,
				Name:            option.Name,
				AdditionalPrice: option.AdditionalPrice,
			})
		}
		addons = append(addons, AddonDTO{
			ID:      addon.ID,
			Name:    addon.Name,
			Options: options,
		})
	}
	return ProductDetailDTO{
		ProductSummaryDTO: toSummaryDTO(product),
		Addons:            addons,
	}
}
