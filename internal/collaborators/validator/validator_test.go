package validator

import (
	"testing"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/collaborators/balance"
	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

func TestValidateAcceptsWellFormedUSDRequest(t *testing.T) {
	balances := balance.NewInMemoryService([]balance.Seed{{Account: "1234567890", Currency: money.USD, Amount: decimal.NewFromInt(1000)}})
	v := New(balances)

	request := model.PaymentRequest{
		Amount:             decimal.NewFromInt(100),
		Currency:           money.USD,
		SourceAccount:      "1234567890",
		DestinationAccount: "0987654321",
	}
	if err := v.Validate(request); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsNonPositiveAmount(t *testing.T) {
	balances := balance.NewInMemoryService(nil)
	v := New(balances)

	request := model.PaymentRequest{
		Amount:             decimal.Zero,
		Currency:           money.USD,
		SourceAccount:      "1234567890",
		DestinationAccount: "0987654321",
	}
	if err := v.Validate(request); err == nil {
		t.Fatalf("expected validation error for zero amount")
	}
}

func TestValidateRejectsAmountOverCeiling(t *testing.T) {
	balances := balance.NewInMemoryService([]balance.Seed{{Account: "1234567890", Currency: money.USD, Amount: decimal.NewFromInt(1_000_000)}})
	v := New(balances)

	request := model.PaymentRequest{
		Amount:             decimal.NewFromInt(20_000),
		Currency:           money.USD,
		SourceAccount:      "1234567890",
		DestinationAccount: "0987654321",
	}
	if err := v.Validate(request); err == nil {
		t.Fatalf("expected validation error for amount above USD ceiling")
	}
}

func TestValidateRejectsMalformedDestinationAccount(t *testing.T) {
	balances := balance.NewInMemoryService([]balance.Seed{{Account: "1234567890", Currency: money.USD, Amount: decimal.NewFromInt(1000)}})
	v := New(balances)

	request := model.PaymentRequest{
		Amount:             decimal.NewFromInt(100),
		Currency:           money.USD,
		SourceAccount:      "1234567890",
		DestinationAccount: "not-an-account",
	}
	if err := v.Validate(request); err == nil {
		t.Fatalf("expected validation error for malformed destination account")
	}
}

func TestValidateRejectsInsufficientBalance(t *testing.T) {
	balances := balance.NewInMemoryService([]balance.Seed{{Account: "1234567890", Currency: money.USD, Amount: decimal.NewFromInt(10)}})
	v := New(balances)

	request := model.PaymentRequest{
		Amount:             decimal.NewFromInt(100),
		Currency:           money.USD,
		SourceAccount:      "1234567890",
		DestinationAccount: "0987654321",
	}
	if err := v.Validate(request); err == nil {
		t.Fatalf("expected validation error for insufficient balance")
	}
}

func TestValidateRejectsBalanceInWrongCurrency(t *testing.T) {
	balances := balance.NewInMemoryService([]balance.Seed{{Account: "1234567890", Currency: money.EUR, Amount: decimal.NewFromInt(1000)}})
	v := New(balances)

	request := model.PaymentRequest{
		Amount:             decimal.NewFromInt(100),
		Currency:           money.USD,
		SourceAccount:      "1234567890",
		DestinationAccount: "0987654321",
	}
	if err := v.Validate(request); err == nil {
		t.Fatalf("expected a EUR balance not to cover a USD debit")
	}
}
