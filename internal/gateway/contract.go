// Package gateway defines the two provider contract shapes the
// orchestration core speaks — the legacy boolean-result shape and the
// modern idempotent-result shape — and the adapters that bridge them,
// per spec.md §4.1.
package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

// Legacy is the original provider contract: no built-in idempotency, no
// status lookup, boolean success signaling.
type Legacy interface {
	Name() string
	GetCommission(currency money.Currency) decimal.Decimal
	IsAvailable(ctx context.Context) bool
	SupportsCurrency(currency money.Currency) bool
	ProcessPayment(ctx context.Context, request model.PaymentRequest) (bool, error)
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (bool, error)
}

// Modern is the idempotent provider contract every new gateway must
// implement directly. Every operation is keyed on a caller-supplied
// identifier so repeated calls with the same key are side-effect free
// after the first (spec.md §4.1's idempotency contract).
type Modern interface {
	Name() string
	GetCommission(currency money.Currency) decimal.Decimal
	IsAvailable(ctx context.Context) bool
	SupportsCurrency(currency money.Currency) bool

	ProcessPayment(ctx context.Context, request model.PaymentRequest, transactionID string) (model.PaymentResult, error)
	GetPaymentStatus(ctx context.Context, transactionID string) (model.PaymentResult, error)
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal, refundID string) (model.RefundResult, error)
	GetRefundStatus(ctx context.Context, refundID string) (model.RefundResult, error)
	CancelPayment(ctx context.Context, transactionID string) (model.PaymentResult, error)
}
