package cart

import (
	"github.com/google/uuid"
)

// CartItemDTO is one line of the cart view.
type CartItemDTO struct {
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	Price           int64     `json:"price"`
	LineTotal       int64     `json:"line_total"`
	SelectedOptions []string  `json:"selected_options"`
}

// CartDTO is the full cart view returned by every cart operation.
type CartDTO struct {
	ID          uuid.UUID     `json:"id"`
	Items       []CartItemDTO `json:"items"`
	TotalAmount int64         `json:"total_amount"`
}

// AddItemInput captures a product selection being added to the cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	OptionIDs []uuid.UUID
}

func toCartDTO(cartID uuid.UUID, rows []ItemRow, total int64) *CartDTO {
	items := make([]CartItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, CartItemDTO{
			ProductID:       row.ProductID,
			ProductName:     row.ProductName,
			Quantity:        row.Quantity,
			Price:           row.Price,
			LineTotal:       row.Price * int64(row.Quantity),
			SelectedOptions: append([]string{}, row.SelectedOptions...),
		})
	}
	return &CartDTO{
		ID:          cartID,
		Items:       items,
		TotalAmount: total,
	}
}
