package providers

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/money"
)

// These cover only the pure, non-network-bound parts of StripeLegacy.
// ProcessPayment and Refund call the real Stripe API and have no
// teacher-corpus precedent for SDK-level mocking, so these tests do not
// exercise them.

func TestStripeLegacySupportsUSDAndEUROnly(t *testing.T) {
	gw := NewStripeLegacy("sk_test_dummy", decimal.NewFromFloat(0.029))

	if !gw.SupportsCurrency(money.USD) {
		t.Fatalf("expected USD to be supported")
	}
	if !gw.SupportsCurrency(money.EUR) {
		t.Fatalf("expected EUR to be supported")
	}
	if gw.SupportsCurrency(money.RUB) {
		t.Fatalf("expected RUB to be unsupported")
	}
}

func TestStripeLegacyAvailableOnlyWithSecretKey(t *testing.T) {
	withKey := NewStripeLegacy("sk_test_dummy", decimal.NewFromFloat(0.029))
	if !withKey.IsAvailable(context.Background()) {
		t.Fatalf("expected gateway with a secret key to be available")
	}

	withoutKey := NewStripeLegacy("", decimal.NewFromFloat(0.029))
	if withoutKey.IsAvailable(context.Background()) {
		t.Fatalf("expected gateway without a secret key to be unavailable")
	}
}

func TestStripeLegacyReportsConfiguredCommission(t *testing.T) {
	gw := NewStripeLegacy("sk_test_dummy", decimal.NewFromFloat(0.029))
	if !gw.GetCommission(money.USD).Equal(decimal.NewFromFloat(0.029)) {
		t.Fatalf("expected configured commission to be echoed back")
	}
}

func TestStripeLegacyName(t *testing.T) {
	gw := NewStripeLegacy("sk_test_dummy", decimal.NewFromFloat(0.029))
	if gw.Name() != "stripe" {
		t.Fatalf("expected name 'stripe', got %q", gw.Name())
	}
}
