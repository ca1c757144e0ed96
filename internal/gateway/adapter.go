package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

// ForwardAdapter wraps a Legacy gateway behind the Modern contract. It is
// the migration path for providers that have not yet exposed idempotency
// keys: every call is forwarded to the legacy gateway as-is, so a
// ForwardAdapter itself offers no idempotency beyond whatever the legacy
// gateway happens to provide (spec.md §4.1).
type ForwardAdapter struct {
	legacy Legacy
}

// NewForwardAdapter wraps legacy behind the Modern interface.
func NewForwardAdapter(legacy Legacy) *ForwardAdapter {
	return &ForwardAdapter{legacy: legacy}
}

func (a *ForwardAdapter) Name() string { return a.legacy.Name() }

func (a *ForwardAdapter) GetCommission(currency money.Currency) decimal.Decimal {
	return a.legacy.GetCommission(currency)
}

func (a *ForwardAdapter) IsAvailable(ctx context.Context) bool {
	return a.legacy.IsAvailable(ctx)
}

func (a *ForwardAdapter) SupportsCurrency(currency money.Currency) bool {
	return a.legacy.SupportsCurrency(currency)
}

// ProcessPayment forwards to the legacy gateway and synthesizes a gateway
// transaction id on success. A false return maps to Failed/LEGACY_GATEWAY_ERROR
// (retryable); an error maps to Failed/LEGACY_GATEWAY_EXCEPTION (retryable).
func (a *ForwardAdapter) ProcessPayment(ctx context.Context, request model.PaymentRequest, transactionID string) (model.PaymentResult, error) {
	ok, err := a.legacy.ProcessPayment(ctx, request)
	now := time.Now().UTC()
	if err != nil {
		return model.PaymentResult{
			IsSuccess:    false,
			Status:       model.PaymentFailed,
			ErrorCode:    model.ErrCodeLegacyGatewayExc,
			ErrorMessage: err.Error(),
			ProcessedAt:  now,
			IsRetryable:  true,
		}, nil
	}
	if !ok {
		return model.PaymentResult{
			IsSuccess:    false,
			Status:       model.PaymentFailed,
			ErrorCode:    model.ErrCodeLegacyGatewayError,
			ErrorMessage: "legacy gateway returned false",
			ProcessedAt:  now,
			IsRetryable:  true,
		}, nil
	}
	return model.PaymentResult{
		IsSuccess:            true,
		GatewayTransactionID: fmt.Sprintf("%s_%s", a.legacy.Name(), transactionID),
		Status:               model.PaymentCompleted,
		ProcessedAt:          now,
	}, nil
}

// GetPaymentStatus is not supported by a legacy gateway: it never learned
// a caller-supplied transaction id, so it has nothing to look up by.
func (a *ForwardAdapter) GetPaymentStatus(ctx context.Context, transactionID string) (model.PaymentResult, error) {
	return notSupportedPaymentResult(), nil
}

// Refund forwards to the legacy gateway; refundID is accepted for
// interface compatibility but unused, since the legacy contract has no
// concept of a refund identifier.
func (a *ForwardAdapter) Refund(ctx context.Context, transactionID string, amount decimal.Decimal, refundID string) (model.RefundResult, error) {
	ok, err := a.legacy.Refund(ctx, transactionID, amount)
	now := time.Now().UTC()
	if err != nil {
		return model.RefundResult{
			IsSuccess:             false,
			Status:                model.RefundFailed,
			ErrorCode:             model.ErrCodeLegacyGatewayExc,
			ErrorMessage:          err.Error(),
			ProcessedAt:           now,
			OriginalTransactionID: transactionID,
		}, nil
	}
	if !ok {
		return model.RefundResult{
			IsSuccess:             false,
			Status:                model.RefundFailed,
			ErrorCode:             model.ErrCodeLegacyGatewayError,
			ErrorMessage:          "legacy gateway returned false",
			ProcessedAt:           now,
			OriginalTransactionID: transactionID,
		}, nil
	}
	return model.RefundResult{
		IsSuccess:             true,
		GatewayRefundID:       fmt.Sprintf("%s_refund_%s", a.legacy.Name(), transactionID),
		Status:                model.RefundCompleted,
		RefundedAmount:        amount,
		ProcessedAt:           now,
		OriginalTransactionID: transactionID,
	}, nil
}

// GetRefundStatus is not supported, same reasoning as GetPaymentStatus.
func (a *ForwardAdapter) GetRefundStatus(ctx context.Context, refundID string) (model.RefundResult, error) {
	return model.RefundResult{
		IsSuccess:    false,
		Status:       model.RefundFailed,
		ErrorCode:    model.ErrCodeNotSupported,
		ErrorMessage: "legacy gateway does not support refund status lookup",
		ProcessedAt:  time.Now().UTC(),
	}, nil
}

// CancelPayment is not supported by a legacy gateway.
func (a *ForwardAdapter) CancelPayment(ctx context.Context, transactionID string) (model.PaymentResult, error) {
	return notSupportedPaymentResult(), nil
}

func notSupportedPaymentResult() model.PaymentResult {
	return model.PaymentResult{
		IsSuccess:    false,
		Status:       model.PaymentFailed,
		ErrorCode:    model.ErrCodeNotSupported,
		ErrorMessage: "operation not supported by legacy gateway adapter",
		ProcessedAt:  time.Now().UTC(),
		IsRetryable:  false,
	}
}

// ReverseAdapter wraps a Modern gateway behind the Legacy contract for
// legacy-only callers. A fresh opaque transactionId/refundId is
// synthesized on every call, so legacy clients going through this
// adapter lose idempotency — this is the only place in the core IDs are
// synthesized rather than supplied by the caller, and it is an accepted
// trade-off of the legacy shape (spec.md §4.1).
type ReverseAdapter struct {
	modern Modern
}

// NewReverseAdapter wraps modern behind the Legacy interface.
func NewReverseAdapter(modern Modern) *ReverseAdapter {
	return &ReverseAdapter{modern: modern}
}

func (a *ReverseAdapter) Name() string { return a.modern.Name() }

func (a *ReverseAdapter) GetCommission(currency money.Currency) decimal.Decimal {
	return a.modern.GetCommission(currency)
}

func (a *ReverseAdapter) IsAvailable(ctx context.Context) bool {
	return a.modern.IsAvailable(ctx)
}

func (a *ReverseAdapter) SupportsCurrency(currency money.Currency) bool {
	return a.modern.SupportsCurrency(currency)
}

func (a *ReverseAdapter) ProcessPayment(ctx context.Context, request model.PaymentRequest) (bool, error) {
	result, err := a.modern.ProcessPayment(ctx, request, uuid.NewString())
	if err != nil {
		return false, err
	}
	return result.IsSuccess, nil
}

func (a *ReverseAdapter) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (bool, error) {
	result, err := a.modern.Refund(ctx, transactionID, amount, uuid.NewString())
	if err != nil {
		return false, err
	}
	return result.IsSuccess, nil
}
