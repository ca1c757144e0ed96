package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

// RazorpayLegacy is a legacy-contract gateway backed by the real
// Razorpay Order/Payment API, adapted from the teacher's RazorpayGateway.
type RazorpayLegacy struct {
	client     *razorpay.Client
	keyID      string
	commission decimal.Decimal

	mu            sync.Mutex
	lastOrderID   string
	lastPaymentID string
}

// NewRazorpayLegacy mirrors the teacher's NewRazorpayGateway.
func NewRazorpayLegacy(keyID, keySecret string, commission decimal.Decimal) *RazorpayLegacy {
	return &RazorpayLegacy{
		client:     razorpay.NewClient(keyID, keySecret),
		keyID:      keyID,
		commission: commission,
	}
}

func (r *RazorpayLegacy) Name() string { return "razorpay" }

func (r *RazorpayLegacy) GetCommission(currency money.Currency) decimal.Decimal {
	return r.commission
}

func (r *RazorpayLegacy) IsAvailable(ctx context.Context) bool {
	return r.keyID != ""
}

func (r *RazorpayLegacy) SupportsCurrency(currency money.Currency) bool {
	return currency == money.RUB
}

// ProcessPayment creates a Razorpay order for request.Amount. Razorpay
// orders start in "created" status and require a client-side capture
// step the legacy contract has no room to express, so a freshly created
// order with no SDK error is treated as success — mirroring the
// teacher's own InitiatePayment, which returns immediately after order
// creation without waiting for capture.
func (r *RazorpayLegacy) ProcessPayment(ctx context.Context, request model.PaymentRequest) (bool, error) {
	amountPaise := int(request.Amount.Mul(decimal.NewFromInt(100)).IntPart())

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": string(request.Currency),
	}

	order, err := r.client.Order.Create(data, nil)
	if err != nil {
		return false, fmt.Errorf("razorpay order create failed: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return false, fmt.Errorf("razorpay order response missing id")
	}

	r.mu.Lock()
	r.lastOrderID = orderID
	r.mu.Unlock()

	return true, nil
}

// Refund refunds the Razorpay payment named by lastPaymentID, falling
// back to transactionID when none is recorded. ProcessPayment only
// creates an order and never records a payment id, so lastPaymentID
// stays empty and transactionID is always the id sent to Razorpay.
func (r *RazorpayLegacy) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (bool, error) {
	r.mu.Lock()
	paymentID := r.lastPaymentID
	r.mu.Unlock()
	if paymentID == "" {
		paymentID = transactionID
	}

	amountPaise := int(amount.Mul(decimal.NewFromInt(100)).IntPart())
	refund, err := r.client.Payment.Refund(paymentID, amountPaise, nil, nil)
	if err != nil {
		return false, fmt.Errorf("razorpay refund failed: %w", err)
	}

	status, _ := refund["status"].(string)
	return status == "processed", nil
}
