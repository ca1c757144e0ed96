// Package model holds the domain entities the orchestration core passes
// between the processor, router and gateways: requests, transactions and
// the gateway-level results they accumulate.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/money"
)

// PaymentRequest is the caller-supplied input bundle for a payment. All
// five fields are required. The Processor never mutates a caller's
// PaymentRequest in place: currency conversion produces a new snapshot
// that becomes part of the Transaction instead (spec §9).
type PaymentRequest struct {
	Amount             decimal.Decimal
	Currency           money.Currency
	SourceAccount      string
	DestinationAccount string
	Metadata           map[string]string
}

// Snapshot returns a deep-enough copy safe to hand to a goroutine that
// will mutate Amount/Currency during conversion without racing the
// caller's original request.
func (r PaymentRequest) Snapshot() PaymentRequest {
	meta := make(map[string]string, len(r.Metadata))
	for k, v := range r.Metadata {
		meta[k] = v
	}
	return PaymentRequest{
		Amount:             r.Amount,
		Currency:           r.Currency,
		SourceAccount:      r.SourceAccount,
		DestinationAccount: r.DestinationAccount,
		Metadata:           meta,
	}
}

// TransactionStatus is the lifecycle state of a Transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionProcessed TransactionStatus = "processed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// ParseTransactionStatus converts an external status string into a
// TransactionStatus, used by the notification hook. The second return
// value is false when s does not name a known status.
func ParseTransactionStatus(s string) (TransactionStatus, bool) {
	switch TransactionStatus(s) {
	case TransactionPending, TransactionProcessed, TransactionFailed, TransactionRefunded:
		return TransactionStatus(s), true
	default:
		return "", false
	}
}

// IsTerminal reports whether new Process calls against this status
// become no-op replays.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionProcessed || s == TransactionFailed || s == TransactionRefunded
}

// Transaction is owned exclusively by the Processor. It is published to
// the transaction log once ID and Timestamp are set; every later field
// update happens under the per-id lock (spec §5). Once a gateway is
// chosen, GatewayUsed and Commission are set before Status leaves
// Pending, so concurrent lock-free readers never see a gateway outcome
// without the gateway that produced it; a transaction that fails before
// gateway selection leaves both unset.
type Transaction struct {
	ID            string
	Request       PaymentRequest
	Status        TransactionStatus
	Timestamp     time.Time
	GatewayUsed   string
	Commission    decimal.Decimal
	ErrorMessage  string
	PriorStatus   TransactionStatus // audit trail left by HandleNotification
}

// PaymentStatus is the gateway-level outcome status, richer than the
// Transaction's coarse lifecycle state.
type PaymentStatus string

const (
	PaymentPending            PaymentStatus = "pending"
	PaymentProcessing         PaymentStatus = "processing"
	PaymentCompleted          PaymentStatus = "completed"
	PaymentFailed             PaymentStatus = "failed"
	PaymentCancelled          PaymentStatus = "cancelled"
	PaymentRequiresAction     PaymentStatus = "requires_action"
	PaymentPartiallyCompleted PaymentStatus = "partially_completed"
)

// PaymentResult is the value a modern gateway returns from
// ProcessPayment/GetPaymentStatus/CancelPayment. For a given
// (gateway instance, transactionId) every PaymentResult returned must be
// value-equal, including ProcessedAt (spec §3, §4.1).
type PaymentResult struct {
	IsSuccess             bool
	GatewayTransactionID  string
	Status                PaymentStatus
	ErrorCode             string
	ErrorMessage          string
	ProcessedAt           time.Time
	IsRetryable           bool
	ActualAmount          decimal.Decimal
	HasActualAmount       bool
	ProviderReference     string
}

// ShouldRetry reports whether the retry policy should attempt this
// payment again: only unsuccessful, explicitly retryable outcomes.
func (r PaymentResult) ShouldRetry() bool {
	return !r.IsSuccess && r.IsRetryable
}

// RefundStatus is the gateway-level outcome status for a refund.
type RefundStatus string

const (
	RefundPending            RefundStatus = "pending"
	RefundProcessing         RefundStatus = "processing"
	RefundCompleted          RefundStatus = "completed"
	RefundFailed             RefundStatus = "failed"
	RefundPartiallyRefunded  RefundStatus = "partially_refunded"
)

// RefundResult is the value a modern gateway returns from
// Refund/GetRefundStatus, governed by the same idempotency discipline as
// PaymentResult, keyed on RefundID instead of TransactionID.
type RefundResult struct {
	IsSuccess            bool
	GatewayRefundID      string
	Status               RefundStatus
	ErrorCode            string
	ErrorMessage         string
	ProcessedAt          time.Time
	RefundedAmount       decimal.Decimal
	OriginalTransactionID string
}

// Well-known error codes surfaced on PaymentResult/RefundResult.
const (
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeRefundNotFound      = "REFUND_NOT_FOUND"
	ErrCodeCannotCancel        = "CANNOT_CANCEL"
	ErrCodeUnsupportedCurrency = "UNSUPPORTED_CURRENCY"
	ErrCodeTemporaryError      = "TEMPORARY_ERROR"
	ErrCodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	ErrCodeLegacyGatewayError  = "LEGACY_GATEWAY_ERROR"
	ErrCodeLegacyGatewayExc    = "LEGACY_GATEWAY_EXCEPTION"
	ErrCodeNotSupported        = "NOT_SUPPORTED"
)
