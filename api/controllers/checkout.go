package controllers

import (
	"net/http"

	"github.com/hamzarauf/foodio-backend/api/responses"
	"github.com/hamzarauf/foodio-backend/api/validators"
	checkoutsvc "github.com/hamzarauf/foodio-backend/internal/checkout"
	"github.com/hamzarauf/foodio-backend/pkg/enums"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
	"github.com/hamzarauf/foodio-backend/pkg/logger"
)

type placeOrderRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
	ExpectedTotal int64  `json:"expected_total"`
}

// CheckoutQuote prices the current cart without placing an order.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := authedUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Quote(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// Checkout settles the cart into a payment and order atomically.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := authedUserID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		receipt, err := svc.PlaceOrder(ctx, userID, checkoutsvc.PlaceOrderInput{
			Method:        method,
			ExpectedTotal: payload.ExpectedTotal,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
