package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"

	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

// StripeLegacy is a legacy-contract gateway backed by the real Stripe
// PaymentIntent API, adapted from the teacher's StripeGateway. Stripe's
// rich PaymentIntent lifecycle (requires_confirmation, requires_action,
// succeeded, ...) is collapsed to the boolean the Legacy contract wants;
// a ForwardAdapter restores a Modern-shaped result around it for the
// router (spec.md §4.6).
type StripeLegacy struct {
	secretKey  string
	commission decimal.Decimal

	mu                  sync.Mutex
	lastPaymentIntentID string // legacy contract has no transactionID to key by
}

// NewStripeLegacy configures stripe.Key globally, matching the teacher's
// NewStripeGateway.
func NewStripeLegacy(secretKey string, commission decimal.Decimal) *StripeLegacy {
	stripe.Key = secretKey
	return &StripeLegacy{
		secretKey:  secretKey,
		commission: commission,
	}
}

func (s *StripeLegacy) Name() string { return "stripe" }

func (s *StripeLegacy) GetCommission(currency money.Currency) decimal.Decimal {
	return s.commission
}

func (s *StripeLegacy) IsAvailable(ctx context.Context) bool {
	return s.secretKey != ""
}

func (s *StripeLegacy) SupportsCurrency(currency money.Currency) bool {
	switch currency {
	case money.USD, money.EUR:
		return true
	default:
		return false
	}
}

// ProcessPayment creates and immediately confirms a Stripe PaymentIntent
// for the request's amount, reporting success only once Stripe reports
// the intent as succeeded. The PaymentIntent id is remembered so a later
// Refund call can locate it.
func (s *StripeLegacy) ProcessPayment(ctx context.Context, request model.PaymentRequest) (bool, error) {
	amountCents := request.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(string(request.Currency)),
		PaymentMethod: stripe.String("pm_card_visa"),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return false, fmt.Errorf("stripe payment intent create failed: %w", err)
	}

	succeeded := pi.Status == stripe.PaymentIntentStatusSucceeded
	if succeeded {
		s.mu.Lock()
		s.lastPaymentIntentID = pi.ID
		s.mu.Unlock()
	}
	return succeeded, nil
}

// Refund issues a Stripe refund against the most recently processed
// PaymentIntent. transactionID is accepted for interface compatibility
// but cannot be honored precisely: the legacy contract never learned a
// caller-supplied id for the payment it is refunding, which is exactly
// the idempotency gap the Modern contract closes.
func (s *StripeLegacy) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (bool, error) {
	s.mu.Lock()
	piID := s.lastPaymentIntentID
	s.mu.Unlock()
	if piID == "" {
		piID = transactionID // fall back to a caller-supplied gateway-native id
	}

	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(piID),
		Amount:        stripe.Int64(amountCents),
	}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return false, fmt.Errorf("stripe refund failed: %w", err)
	}
	return r.Status == stripe.RefundStatusSucceeded, nil
}
