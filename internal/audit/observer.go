// Package audit defines an optional, non-blocking observation hook into
// the Processor's lifecycle events. Observers never sit on the critical
// path: the Processor fires them from a separate goroutine and never
// waits on or fails because of their outcome.
package audit

import "payment-orchestrator/internal/model"

// TransactionObserver is notified after a Transaction reaches a terminal
// status. Implementations must not block the caller for long; the
// Processor invokes them asynchronously but a slow observer still
// accumulates goroutines under load.
type TransactionObserver interface {
	Observe(txn model.Transaction)
}

// NoopObserver discards every event; the default when no audit sink is
// configured.
type NoopObserver struct{}

func (NoopObserver) Observe(model.Transaction) {}

// Dispatch fans a Transaction snapshot out to every observer on its own
// goroutine, matching the "never on the critical path" contract.
func Dispatch(observers []TransactionObserver, txn model.Transaction) {
	for _, o := range observers {
		o := o
		go o.Observe(txn)
	}
}
