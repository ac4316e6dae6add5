package enums

import "fmt"

// PaymentStatus tracks the settlement state of a recorded payment.
// Cash payments settle at the door and are recorded completed; card
// payments stay pending until the downstream processor confirms them.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusCompleted,
	PaymentStatusPending,
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts raw input into a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}

// ForMethod returns the initial status a new payment takes for the method.
func ForMethod(method PaymentMethod) PaymentStatus {
	if method == PaymentMethodCash {
		return PaymentStatusCompleted
	}
	return PaymentStatusPending
}
