// Package api hosts the payment orchestration core behind an HTTP
// surface, in the shape of the teacher's payment-service handlers. The
// host is explicitly not part of the core triad (processor, router,
// gateway contract); it only translates HTTP requests into calls against
// it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/apperrors"
	"payment-orchestrator/internal/httpjson"
	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

// Processor is the subset of processor.Processor the HTTP host drives.
type Processor interface {
	Process(ctx context.Context, request model.PaymentRequest, transactionID string, targetCurrency money.Currency) (*model.Transaction, error)
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (*model.Transaction, error)
	HandleNotification(transactionID, statusString string)
	GetTransaction(transactionID string) *model.Transaction
	Cleanup()
}

// PaymentHandler adapts HTTP requests to processor.Processor calls,
// mirroring the teacher's PaymentHandler shape.
type PaymentHandler struct {
	processor Processor
}

// NewPaymentHandler builds a PaymentHandler over processor.
func NewPaymentHandler(processor Processor) *PaymentHandler {
	return &PaymentHandler{processor: processor}
}

// ProcessPayment handles POST /payments.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var body processPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.WriteAPIError(w, apperrors.NewValidationError("request_body", "invalid request body"))
		return
	}

	if body.TransactionID == "" {
		apperrors.WriteAPIError(w, apperrors.NewValidationError("transaction_id", "is required"))
		return
	}

	targetCurrency := money.Currency(body.TargetCurrency)

	txn, err := h.processor.Process(r.Context(), body.toDomain(), body.TransactionID, targetCurrency)
	if err != nil {
		log.Error().Str("transaction_id", body.TransactionID).Err(err).Msg("payment processing failed")
		apperrors.WriteAPIError(w, err)
		return
	}

	httpjson.WriteSuccess(w, toTransactionResponse(txn))
}

// GetPayment handles GET /payments/{id}.
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	txn := h.processor.GetTransaction(id)
	if txn == nil {
		apperrors.WriteAPIError(w, errors.New("transaction not found"))
		return
	}
	httpjson.WriteSuccess(w, toTransactionResponse(txn))
}

// RefundPayment handles POST /payments/{id}/refund.
func (h *PaymentHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body refundRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.WriteAPIError(w, apperrors.NewValidationError("request_body", "invalid request body"))
		return
	}

	txn, err := h.processor.Refund(r.Context(), id, body.Amount)
	if err != nil {
		log.Error().Str("transaction_id", id).Err(err).Msg("refund failed")
		apperrors.WriteAPIError(w, err)
		return
	}

	httpjson.WriteSuccess(w, toTransactionResponse(txn))
}

// Cleanup handles POST /admin/cleanup.
func (h *PaymentHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	h.processor.Cleanup()
	httpjson.WriteSuccess(w, map[string]string{"status": "ok"})
}
