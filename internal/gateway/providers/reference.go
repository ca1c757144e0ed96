// Package providers holds concrete Gateway implementations: the
// canonical in-memory reference gateway used by tests and demos, and
// legacy-contract wrappers around the teacher's real Stripe/Razorpay SDK
// calls.
package providers

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

// Reference is the canonical in-memory implementation of the Modern
// gateway contract (spec.md §4.5). It simulates provider latency and a
// fixed outcome distribution driven by a seedable random source, so
// tests can pin results deterministically.
type Reference struct {
	name              string
	commission        decimal.Decimal
	supportedCurrency map[money.Currency]bool

	rng   *rand.Rand
	rngMu sync.Mutex

	mu                sync.Mutex
	idLocks           map[string]*sync.Mutex
	processedPayments map[string]model.PaymentResult
	processedRefunds  map[string]model.RefundResult

	latency func() time.Duration
}

// NewReference builds a reference gateway. seed pins the outcome
// distribution for deterministic tests; pass time.Now().UnixNano() for a
// gateway whose outcomes vary run to run.
func NewReference(name string, commission decimal.Decimal, currencies []money.Currency, seed int64) *Reference {
	supported := make(map[money.Currency]bool, len(currencies))
	for _, c := range currencies {
		supported[c] = true
	}
	return &Reference{
		name:              name,
		commission:        commission,
		supportedCurrency: supported,
		rng:               rand.New(rand.NewSource(seed)),
		idLocks:           make(map[string]*sync.Mutex),
		processedPayments: make(map[string]model.PaymentResult),
		processedRefunds:  make(map[string]model.RefundResult),
		latency:           func() time.Duration { return 5 * time.Millisecond },
	}
}

func (g *Reference) Name() string { return g.name }

func (g *Reference) GetCommission(currency money.Currency) decimal.Decimal {
	return g.commission
}

// IsAvailable returns true with probability 0.95, per spec.md §4.5.
func (g *Reference) IsAvailable(ctx context.Context) bool {
	g.sleep(ctx)
	return g.sample() < 0.95
}

func (g *Reference) SupportsCurrency(currency money.Currency) bool {
	return g.supportedCurrency[currency]
}

func (g *Reference) sample() float64 {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return g.rng.Float64()
}

func (g *Reference) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(g.latency()):
	}
}

func (g *Reference) lockFor(table map[string]*sync.Mutex, id string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := table[id]
	if !ok {
		l = &sync.Mutex{}
		table[id] = l
	}
	return l
}

// ProcessPayment is idempotent on transactionID: the first completed call
// fixes the PaymentResult (including ProcessedAt); every later call,
// sequential or concurrent, replays the cached value without consuming a
// second randomness sample or sleeping again.
func (g *Reference) ProcessPayment(ctx context.Context, request model.PaymentRequest, transactionID string) (model.PaymentResult, error) {
	g.mu.Lock()
	if cached, ok := g.processedPayments[transactionID]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	g.mu.Unlock()

	idLock := g.lockFor(g.idLocks, transactionID)
	idLock.Lock()
	defer idLock.Unlock()

	g.mu.Lock()
	if cached, ok := g.processedPayments[transactionID]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	g.mu.Unlock()

	g.sleep(ctx)

	var result model.PaymentResult
	if !g.SupportsCurrency(request.Currency) {
		result = model.PaymentResult{
			IsSuccess:    false,
			Status:       model.PaymentFailed,
			ErrorCode:    model.ErrCodeUnsupportedCurrency,
			ErrorMessage: fmt.Sprintf("%s does not support currency %s", g.name, request.Currency),
			ProcessedAt:  time.Now().UTC(),
			IsRetryable:  false,
		}
	} else {
		roll := g.sample()
		switch {
		case roll < 0.85:
			actual := request.Amount.Sub(request.Amount.Mul(g.commission))
			result = model.PaymentResult{
				IsSuccess:            true,
				GatewayTransactionID: fmt.Sprintf("%s_tx_%s", g.name, transactionID),
				Status:               model.PaymentCompleted,
				ProcessedAt:          time.Now().UTC(),
				ActualAmount:         money.Round2(actual),
				HasActualAmount:      true,
				ProviderReference:    fmt.Sprintf("%s_ref_%s", g.name, transactionID),
			}
		case roll < 0.95:
			result = model.PaymentResult{
				IsSuccess:    false,
				Status:       model.PaymentFailed,
				ErrorCode:    model.ErrCodeTemporaryError,
				ErrorMessage: "temporary provider error, retry later",
				ProcessedAt:  time.Now().UTC(),
				IsRetryable:  true,
			}
		default:
			result = model.PaymentResult{
				IsSuccess:    false,
				Status:       model.PaymentFailed,
				ErrorCode:    model.ErrCodeInsufficientFunds,
				ErrorMessage: "insufficient funds",
				ProcessedAt:  time.Now().UTC(),
				IsRetryable:  false,
			}
		}
	}

	g.mu.Lock()
	g.processedPayments[transactionID] = result
	g.mu.Unlock()

	return result, nil
}

// GetPaymentStatus returns the cached PaymentResult for a known
// transaction, or a Failed/TRANSACTION_NOT_FOUND result otherwise.
func (g *Reference) GetPaymentStatus(ctx context.Context, transactionID string) (model.PaymentResult, error) {
	g.sleep(ctx)
	g.mu.Lock()
	result, ok := g.processedPayments[transactionID]
	g.mu.Unlock()
	if !ok {
		return model.PaymentResult{
			IsSuccess:    false,
			Status:       model.PaymentFailed,
			ErrorCode:    model.ErrCodeTransactionNotFound,
			ErrorMessage: "unknown transaction id",
			ProcessedAt:  time.Now().UTC(),
		}, nil
	}
	return result, nil
}

// Refund is idempotent on refundID with the same double-checked-lookup
// discipline as ProcessPayment.
func (g *Reference) Refund(ctx context.Context, transactionID string, amount decimal.Decimal, refundID string) (model.RefundResult, error) {
	g.mu.Lock()
	if cached, ok := g.processedRefunds[refundID]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	g.mu.Unlock()

	idLock := g.lockFor(g.idLocks, "refund:"+refundID)
	idLock.Lock()
	defer idLock.Unlock()

	g.mu.Lock()
	if cached, ok := g.processedRefunds[refundID]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	g.mu.Unlock()

	g.sleep(ctx)

	result := model.RefundResult{
		IsSuccess:             true,
		GatewayRefundID:       fmt.Sprintf("%s_refund_%s", g.name, refundID),
		Status:                model.RefundCompleted,
		RefundedAmount:        amount,
		ProcessedAt:           time.Now().UTC(),
		OriginalTransactionID: transactionID,
	}

	g.mu.Lock()
	g.processedRefunds[refundID] = result
	g.mu.Unlock()

	return result, nil
}

// GetRefundStatus returns the cached RefundResult for a known refund, or
// a Failed/REFUND_NOT_FOUND result otherwise.
func (g *Reference) GetRefundStatus(ctx context.Context, refundID string) (model.RefundResult, error) {
	g.sleep(ctx)
	g.mu.Lock()
	result, ok := g.processedRefunds[refundID]
	g.mu.Unlock()
	if !ok {
		return model.RefundResult{
			IsSuccess:    false,
			Status:       model.RefundFailed,
			ErrorCode:    model.ErrCodeRefundNotFound,
			ErrorMessage: "unknown refund id",
			ProcessedAt:  time.Now().UTC(),
		}, nil
	}
	return result, nil
}

// CancelPayment is only honored when the transaction is Pending or
// Processing. The reference gateway's ProcessPayment is synchronous and
// never leaves a transaction in either state, so a known transaction is
// always already terminal by the time CancelPayment could observe it;
// cancellation therefore only ever succeeds for an id that was never
// submitted, treated here as "cannot cancel" to stay conservative.
func (g *Reference) CancelPayment(ctx context.Context, transactionID string) (model.PaymentResult, error) {
	g.sleep(ctx)
	g.mu.Lock()
	_, known := g.processedPayments[transactionID]
	g.mu.Unlock()
	if known {
		return model.PaymentResult{
			IsSuccess:    false,
			Status:       model.PaymentCancelled,
			ErrorCode:    model.ErrCodeCannotCancel,
			ErrorMessage: "payment already reached a terminal state",
			ProcessedAt:  time.Now().UTC(),
		}, nil
	}
	return model.PaymentResult{
		IsSuccess:    false,
		Status:       model.PaymentCancelled,
		ErrorCode:    model.ErrCodeCannotCancel,
		ErrorMessage: "unknown transaction id",
		ProcessedAt:  time.Now().UTC(),
	}, nil
}
