package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/pkg/enums"
)

// OrderItemDTO is one archived line of a past order.
type OrderItemDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       int64     `json:"price"`
}

// OrderDTO is one row of the order history view. AmountAvailable is false
// when the payment record could not be loaded; the order is still listed.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	Status          enums.OrderStatus   `json:"status"`
	OrderDate       time.Time           `json:"order_date"`
	Amount          int64               `json:"amount"`
	AmountAvailable bool                `json:"amount_available"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method,omitempty"`
	Items           []OrderItemDTO      `json:"items"`
}
