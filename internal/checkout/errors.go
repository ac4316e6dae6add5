package checkout

import "fmt"

// State identifies how far the checkout transaction progressed before an
// error aborted it. The whole transaction rolls back either way; the state
// is kept for error details and failure metrics.
type State string

const (
	StateCartReady       State = "CART_READY"
	StatePaymentRecorded State = "PAYMENT_RECORDED"
	StateOrderRecorded   State = "ORDER_RECORDED"
	StateHistoryArchived State = "HISTORY_ARCHIVED"
	StateCartCleared     State = "CART_CLEARED"
)

// StepError wraps a persistence failure with the last state reached.
type StepError struct {
	State State
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("checkout aborted after %s: %v", e.State, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func failAt(state State, err error) error {
	return &StepError{State: state, Err: err}
}
