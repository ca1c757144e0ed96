// Package processor owns the transaction lifecycle: per-id mutual
// exclusion, idempotent process/refund, out-of-band notification
// ingestion and lock-table cleanup, per spec.md §4.4.
package processor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/apperrors"
	"payment-orchestrator/internal/audit"
	"payment-orchestrator/internal/gateway"
	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
	"payment-orchestrator/internal/retry"
)

// Validator checks a PaymentRequest before the Processor attempts it.
type Validator interface {
	Validate(request model.PaymentRequest) error
}

// RateService resolves conversion rates between currencies.
type RateService interface {
	Convert(amount decimal.Decimal, from, to money.Currency) (decimal.Decimal, error)
}

// Router selects the gateway a request should be sent to, and resolves a
// gateway by the name a prior transaction recorded.
type Router interface {
	SelectOptimal(ctx context.Context, request model.PaymentRequest) (gateway.Modern, error)
	GetByName(name string) (gateway.Modern, error)
}

// Processor is the concurrency-safe core of the orchestration library.
// A zero Processor is not usable; construct with New.
type Processor struct {
	validator Validator
	router    Router
	rates     RateService
	retry     retry.Policy

	observers []audit.TransactionObserver

	mu   sync.RWMutex
	log  map[string]*model.Transaction
	lock sync.Map // transactionId -> *sync.Mutex
}

// New builds a Processor. retryPolicy is typically retry.Default().
func New(validator Validator, router Router, rates RateService, retryPolicy retry.Policy) *Processor {
	return &Processor{
		validator: validator,
		router:    router,
		rates:     rates,
		retry:     retryPolicy,
		log:       make(map[string]*model.Transaction),
	}
}

// WithObservers attaches audit observers notified after a transaction
// reaches a terminal status. Observers run off the critical path and
// never influence Process/Refund's return value.
func (p *Processor) WithObservers(observers ...audit.TransactionObserver) *Processor {
	p.observers = observers
	return p
}

func (p *Processor) notify(txn *model.Transaction) {
	if len(p.observers) == 0 {
		return
	}
	audit.Dispatch(p.observers, *txn)
}

func (p *Processor) lockFor(transactionID string) *sync.Mutex {
	actual, _ := p.lock.LoadOrStore(transactionID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// GetTransaction returns the current record for transactionID, or nil if
// unknown. The returned pointer must be treated as read-only by callers
// that are not holding the transaction's lock.
func (p *Processor) GetTransaction(transactionID string) *model.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.log[transactionID]
}

// Process runs the full per-transaction lifecycle described in spec.md
// §4.4: lock acquisition, idempotent read-or-insert, validation,
// optional currency conversion, gateway selection and the retried
// gateway call. targetCurrency may be the zero value to skip conversion.
func (p *Processor) Process(ctx context.Context, request model.PaymentRequest, transactionID string, targetCurrency money.Currency) (*model.Transaction, error) {
	txLock := p.lockFor(transactionID)
	txLock.Lock()
	defer txLock.Unlock()

	txn, isNew := p.readOrInsert(transactionID, request)
	if !isNew && txn.Status.IsTerminal() {
		return txn, nil
	}

	workingRequest := request.Snapshot()

	if err := p.validator.Validate(workingRequest); err != nil {
		p.fail(txn, "Validation failed")
		log.Warn().Str("transaction_id", transactionID).Err(err).Msg("payment validation failed")
		return txn, nil
	}

	var zeroCurrency money.Currency
	if targetCurrency != zeroCurrency && targetCurrency != workingRequest.Currency {
		converted, err := p.rates.Convert(workingRequest.Amount, workingRequest.Currency, targetCurrency)
		if err != nil {
			p.fail(txn, err.Error())
			log.Warn().Str("transaction_id", transactionID).Err(err).Msg("currency conversion failed")
			return txn, nil
		}
		workingRequest.Amount = converted
		workingRequest.Currency = targetCurrency
	}

	gw, err := p.router.SelectOptimal(ctx, workingRequest)
	if err != nil {
		p.fail(txn, err.Error())
		log.Warn().Str("transaction_id", transactionID).Err(err).Msg("no gateway available")
		return txn, nil
	}

	p.mu.Lock()
	txn.GatewayUsed = gw.Name()
	txn.Commission = money.Round2(gw.GetCommission(workingRequest.Currency))
	txn.Request = workingRequest
	p.mu.Unlock()

	result, err := retry.Do(ctx, p.retry, func(ctx context.Context) (model.PaymentResult, error) {
		return gw.ProcessPayment(ctx, workingRequest, transactionID)
	})
	if err != nil {
		if isCancellation(err) {
			log.Warn().Str("transaction_id", transactionID).Err(err).Msg("payment processing cancelled, transaction left pending")
			return txn, errors.Join(apperrors.ErrCancelled, err)
		}
		p.fail(txn, err.Error())
		log.Error().Str("transaction_id", transactionID).Err(err).Msg("gateway call failed permanently")
		return txn, nil
	}

	p.mu.Lock()
	if result.IsSuccess {
		txn.Status = model.TransactionProcessed
	} else {
		txn.Status = model.TransactionFailed
		txn.ErrorMessage = result.ErrorMessage
	}
	p.mu.Unlock()
	p.notify(txn)

	log.Info().
		Str("transaction_id", transactionID).
		Str("gateway", gw.Name()).
		Str("status", string(txn.Status)).
		Msg("payment processed")

	return txn, nil
}

// readOrInsert atomically looks up an existing Transaction or creates a
// new Pending one. isNew reports whether it created the record.
func (p *Processor) readOrInsert(transactionID string, request model.PaymentRequest) (*model.Transaction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.log[transactionID]; ok {
		return existing, false
	}

	txn := &model.Transaction{
		ID:        transactionID,
		Request:   request.Snapshot(),
		Status:    model.TransactionPending,
		Timestamp: time.Now().UTC(),
	}
	p.log[transactionID] = txn
	return txn, true
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (p *Processor) fail(txn *model.Transaction, message string) {
	p.mu.Lock()
	txn.Status = model.TransactionFailed
	txn.ErrorMessage = message
	p.mu.Unlock()
	p.notify(txn)
}

// Refund replays the spec.md §4.4 refund flow: the transaction must be
// Processed and resolve to a known gateway by name, and the gateway call
// is serialized by the same per-transaction lock as Process. The public
// signature carries no refund id — the transaction id already identifies
// the refund uniquely, since a transaction can only be refunded once
// (the Processed-only guard at the top of Refund rejects any repeat
// attempt).
func (p *Processor) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (*model.Transaction, error) {
	txLock := p.lockFor(transactionID)
	txLock.Lock()
	defer txLock.Unlock()

	p.mu.RLock()
	txn, ok := p.log[transactionID]
	p.mu.RUnlock()
	if !ok || txn.Status != model.TransactionProcessed {
		return nil, apperrors.ErrCannotRefund
	}

	gw, err := p.router.GetByName(txn.GatewayUsed)
	if err != nil {
		return nil, err
	}

	// The gateway contract requires a refund id for its own idempotency;
	// the transaction id doubles as one since refunds aren't repeatable.
	result, err := gw.Refund(ctx, transactionID, amount, transactionID)
	if err != nil {
		return nil, err
	}

	if result.IsSuccess {
		p.mu.Lock()
		txn.Status = model.TransactionRefunded
		p.mu.Unlock()
		p.notify(txn)
		log.Info().Str("transaction_id", transactionID).Msg("refund completed")
	}

	return txn, nil
}

// HandleNotification applies an out-of-band status override from a
// webhook transport. Unknown transaction ids or unparseable status
// strings are ignored, logged only — this is the one path allowed to
// move a terminal transaction back to a non-terminal state, so the
// prior status is preserved for audit.
func (p *Processor) HandleNotification(transactionID, statusString string) {
	status, ok := model.ParseTransactionStatus(statusString)
	if !ok {
		log.Warn().Str("transaction_id", transactionID).Str("status", statusString).Msg("ignoring notification with unparseable status")
		return
	}

	txLock := p.lockFor(transactionID)
	txLock.Lock()
	defer txLock.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	txn, ok := p.log[transactionID]
	if !ok {
		log.Warn().Str("transaction_id", transactionID).Msg("ignoring notification for unknown transaction")
		return
	}

	txn.PriorStatus = txn.Status
	txn.Status = status
	log.Info().
		Str("transaction_id", transactionID).
		Str("prior_status", string(txn.PriorStatus)).
		Str("new_status", string(status)).
		Msg("transaction status overridden by notification")

	if status.IsTerminal() {
		p.notify(txn)
	}
}

// Cleanup removes per-id locks for transactions whose status is
// terminal. It never removes a lock while it is held: acquiring the
// lock before deleting it serializes Cleanup against any in-flight
// Process/Refund for the same id.
func (p *Processor) Cleanup() {
	p.mu.RLock()
	terminal := make([]string, 0, len(p.log))
	for id, txn := range p.log {
		if txn.Status.IsTerminal() {
			terminal = append(terminal, id)
		}
	}
	p.mu.RUnlock()

	for _, id := range terminal {
		l := p.lockFor(id)
		l.Lock()
		p.lock.Delete(id)
		l.Unlock()
	}
}
