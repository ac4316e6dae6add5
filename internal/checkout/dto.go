package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/hamzarauf/foodio-backend/pkg/enums"
)

// QuoteDTO is the server-side price breakdown for the user's cart.
type QuoteDTO struct {
	Subtotal       int64 `json:"subtotal"`
	Discount       int64 `json:"discount"`
	DeliveryCharge int64 `json:"delivery_charge"`
	GrandTotal     int64 `json:"grand_total"`
}

// PlaceOrderInput captures the client's checkout submission.
type PlaceOrderInput struct {
	Method        enums.PaymentMethod
	ExpectedTotal int64
}

// ReceiptDTO is the confirmation returned after a successful checkout.
type ReceiptDTO struct {
	OrderID       uuid.UUID           `json:"order_id"`
	PaymentID     uuid.UUID           `json:"payment_id"`
	Amount        int64               `json:"amount"`
	Method        enums.PaymentMethod `json:"method"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	OrderStatus   enums.OrderStatus   `json:"order_status"`
	OrderDate     time.Time           `json:"order_date"`
}
