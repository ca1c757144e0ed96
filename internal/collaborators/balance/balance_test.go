package balance

import (
	"testing"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/money"
)

func TestHasSufficientBalanceTrueWhenCoversAmount(t *testing.T) {
	s := NewInMemoryService([]Seed{{Account: "acct-1", Currency: money.USD, Amount: decimal.NewFromInt(100)}})

	if !s.HasSufficientBalance("acct-1", decimal.NewFromInt(100), money.USD) {
		t.Fatalf("expected exact balance to be sufficient")
	}
}

func TestHasSufficientBalanceFalseWhenBelowAmount(t *testing.T) {
	s := NewInMemoryService([]Seed{{Account: "acct-1", Currency: money.USD, Amount: decimal.NewFromInt(50)}})

	if s.HasSufficientBalance("acct-1", decimal.NewFromInt(100), money.USD) {
		t.Fatalf("expected insufficient balance to be reported")
	}
}

func TestHasSufficientBalanceFalseForUnknownAccount(t *testing.T) {
	s := NewInMemoryService(nil)

	if s.HasSufficientBalance("ghost", decimal.NewFromInt(1), money.USD) {
		t.Fatalf("expected unknown account to have no balance")
	}
}

func TestHasSufficientBalanceDoesNotConflateCurrencies(t *testing.T) {
	s := NewInMemoryService([]Seed{{Account: "acct-1", Currency: money.USD, Amount: decimal.NewFromInt(100)}})

	if s.HasSufficientBalance("acct-1", decimal.NewFromInt(100), money.EUR) {
		t.Fatalf("expected a USD balance not to cover a EUR debit")
	}
}

func TestCreditAndDebitMutateBalance(t *testing.T) {
	s := NewInMemoryService([]Seed{{Account: "acct-1", Currency: money.USD, Amount: decimal.NewFromInt(100)}})

	s.Credit("acct-1", decimal.NewFromInt(50), money.USD)
	if !s.HasSufficientBalance("acct-1", decimal.NewFromInt(150), money.USD) {
		t.Fatalf("expected credit to raise the balance to 150")
	}

	s.Debit("acct-1", decimal.NewFromInt(150), money.USD)
	if s.HasSufficientBalance("acct-1", decimal.NewFromInt(1), money.USD) {
		t.Fatalf("expected debit to drain the balance to zero")
	}
}

func TestCreditCreatesAccountIfMissing(t *testing.T) {
	s := NewInMemoryService(nil)

	s.Credit("new-acct", decimal.NewFromInt(20), money.USD)
	if !s.HasSufficientBalance("new-acct", decimal.NewFromInt(20), money.USD) {
		t.Fatalf("expected credit to create the account with the credited amount")
	}
}
