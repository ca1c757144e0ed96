package router

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/apperrors"
	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

type fakeGateway struct {
	name       string
	commission map[money.Currency]decimal.Decimal
	currencies map[money.Currency]bool
	available  bool
}

func (f *fakeGateway) Name() string { return f.name }
func (f *fakeGateway) GetCommission(currency money.Currency) decimal.Decimal {
	return f.commission[currency]
}
func (f *fakeGateway) IsAvailable(ctx context.Context) bool           { return f.available }
func (f *fakeGateway) SupportsCurrency(currency money.Currency) bool  { return f.currencies[currency] }
func (f *fakeGateway) ProcessPayment(ctx context.Context, request model.PaymentRequest, transactionID string) (model.PaymentResult, error) {
	return model.PaymentResult{}, nil
}
func (f *fakeGateway) GetPaymentStatus(ctx context.Context, transactionID string) (model.PaymentResult, error) {
	return model.PaymentResult{}, nil
}
func (f *fakeGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal, refundID string) (model.RefundResult, error) {
	return model.RefundResult{}, nil
}
func (f *fakeGateway) GetRefundStatus(ctx context.Context, refundID string) (model.RefundResult, error) {
	return model.RefundResult{}, nil
}
func (f *fakeGateway) CancelPayment(ctx context.Context, transactionID string) (model.PaymentResult, error) {
	return model.PaymentResult{}, nil
}

func TestSelectOptimalRanksByCommission(t *testing.T) {
	gwA := &fakeGateway{
		name:       "GatewayA",
		commission: map[money.Currency]decimal.Decimal{money.USD: decimal.NewFromFloat(0.01), money.EUR: decimal.NewFromFloat(0.02)},
		currencies: map[money.Currency]bool{money.USD: true, money.EUR: true},
		available:  true,
	}
	gwB := &fakeGateway{
		name:       "GatewayB",
		commission: map[money.Currency]decimal.Decimal{money.EUR: decimal.NewFromFloat(0.015), money.RUB: decimal.NewFromFloat(0.025)},
		currencies: map[money.Currency]bool{money.EUR: true, money.RUB: true},
		available:  true,
	}
	r := New(gwA, gwB)

	selected, err := r.SelectOptimal(context.Background(), model.PaymentRequest{Currency: money.EUR})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if selected.Name() != "GatewayB" {
		t.Fatalf("expected GatewayB for EUR, got %s", selected.Name())
	}

	selected, err = r.SelectOptimal(context.Background(), model.PaymentRequest{Currency: money.USD})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if selected.Name() != "GatewayA" {
		t.Fatalf("expected GatewayA for USD, got %s", selected.Name())
	}

	_, err = r.SelectOptimal(context.Background(), model.PaymentRequest{Currency: money.Currency("XXX")})
	if !errors.Is(err, apperrors.ErrNoGatewayAvailable) {
		t.Fatalf("expected ErrNoGatewayAvailable, got %v", err)
	}
}

func TestSelectOptimalExcludesUnavailable(t *testing.T) {
	gwA := &fakeGateway{
		name:       "GatewayA",
		commission: map[money.Currency]decimal.Decimal{money.USD: decimal.NewFromFloat(0.01)},
		currencies: map[money.Currency]bool{money.USD: true},
		available:  false,
	}
	r := New(gwA)

	_, err := r.SelectOptimal(context.Background(), model.PaymentRequest{Currency: money.USD})
	if !errors.Is(err, apperrors.ErrNoGatewayAvailable) {
		t.Fatalf("expected ErrNoGatewayAvailable, got %v", err)
	}
}

func TestSelectOptimalTieBreaksByRegistrationOrder(t *testing.T) {
	gwA := &fakeGateway{
		name:       "First",
		commission: map[money.Currency]decimal.Decimal{money.USD: decimal.NewFromFloat(0.01)},
		currencies: map[money.Currency]bool{money.USD: true},
		available:  true,
	}
	gwB := &fakeGateway{
		name:       "Second",
		commission: map[money.Currency]decimal.Decimal{money.USD: decimal.NewFromFloat(0.01)},
		currencies: map[money.Currency]bool{money.USD: true},
		available:  true,
	}
	r := New(gwA, gwB)

	selected, err := r.SelectOptimal(context.Background(), model.PaymentRequest{Currency: money.USD})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if selected.Name() != "First" {
		t.Fatalf("expected tie to break toward registration order, got %s", selected.Name())
	}
}

func TestGetByNameExactMatch(t *testing.T) {
	gwA := &fakeGateway{name: "GatewayA"}
	r := New(gwA)

	got, err := r.GetByName("GatewayA")
	if err != nil || got.Name() != "GatewayA" {
		t.Fatalf("expected to find GatewayA, got %v, %v", got, err)
	}

	_, err = r.GetByName("missing")
	if !errors.Is(err, apperrors.ErrGatewayNotFound) {
		t.Fatalf("expected ErrGatewayNotFound, got %v", err)
	}
}
