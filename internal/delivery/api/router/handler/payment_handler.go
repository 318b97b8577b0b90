package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler creates payment intents.
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

// CreatePaymentIntentRequest references the order; amount in minor units is
// optional and only checked against the order total.
type CreatePaymentIntentRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
	Amount  *int64    `json:"amount" validate:"omitempty,gt=0"`
}

// PaymentIntentResponse is returned to the client to confirm the payment.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// CreatePaymentIntent handles POST /api/payments/create-payment-intent.
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req CreatePaymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.paymentUC.CreatePaymentIntent(c.Request().Context(), deliverycontext.GetPrincipal(c), usecase.CreatePaymentIntentInput{
		OrderID: req.OrderID,
		Amount:  req.Amount,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, PaymentIntentResponse{
		ClientSecret: out.ClientSecret,
		ID:           out.ID,
		Amount:       out.Amount,
		Currency:     out.Currency,
	})
}
