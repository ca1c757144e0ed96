// Package balance provides the account balance lookup the Validator
// collaborator consults before a payment is allowed to proceed.
package balance

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/money"
)

// Service reports whether an account can cover a debit in a given
// currency.
type Service interface {
	HasSufficientBalance(account string, amount decimal.Decimal, currency money.Currency) bool
}

// InMemoryService is a process-local balance ledger, suitable for tests
// and demos. A real deployment would back this with the account
// repository instead; the interface is deliberately narrow so swapping
// implementations never touches the Validator. Balances are held
// per (account, currency) pair: a 100 USD balance never covers a 100
// EUR debit.
type InMemoryService struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
}

// Seed pins a starting balance for one account in one currency.
type Seed struct {
	Account  string
	Currency money.Currency
	Amount   decimal.Decimal
}

// NewInMemoryService seeds the ledger with the given starting balances.
func NewInMemoryService(seed []Seed) *InMemoryService {
	balances := make(map[string]decimal.Decimal, len(seed))
	for _, s := range seed {
		balances[key(s.Account, s.Currency)] = s.Amount
	}
	return &InMemoryService{balances: balances}
}

func key(account string, currency money.Currency) string {
	return fmt.Sprintf("%s:%s", account, currency)
}

// HasSufficientBalance reports whether account holds at least amount in
// currency. An (account, currency) pair with no recorded balance is
// treated as having none.
func (s *InMemoryService) HasSufficientBalance(account string, amount decimal.Decimal, currency money.Currency) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	current, ok := s.balances[key(account, currency)]
	if !ok {
		return false
	}
	return current.GreaterThanOrEqual(amount)
}

// Credit adds amount to account's balance in currency, creating the
// entry if needed. Used by tests to set up scenarios.
func (s *InMemoryService) Credit(account string, amount decimal.Decimal, currency money.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(account, currency)
	s.balances[k] = s.balances[k].Add(amount)
}

// Debit subtracts amount from account's balance in currency without
// checking for sufficiency; callers are expected to have checked
// HasSufficientBalance first.
func (s *InMemoryService) Debit(account string, amount decimal.Decimal, currency money.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(account, currency)
	s.balances[k] = s.balances[k].Sub(amount)
}
