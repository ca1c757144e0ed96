package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

type fakeLegacy struct {
	name           string
	processResult  bool
	processErr     error
	refundResult   bool
	refundErr      error
	processedCalls int
}

func (f *fakeLegacy) Name() string { return f.name }
func (f *fakeLegacy) GetCommission(currency money.Currency) decimal.Decimal {
	return decimal.NewFromFloat(0.01)
}
func (f *fakeLegacy) IsAvailable(ctx context.Context) bool       { return true }
func (f *fakeLegacy) SupportsCurrency(currency money.Currency) bool { return true }
func (f *fakeLegacy) ProcessPayment(ctx context.Context, request model.PaymentRequest) (bool, error) {
	f.processedCalls++
	return f.processResult, f.processErr
}
func (f *fakeLegacy) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (bool, error) {
	return f.refundResult, f.refundErr
}

func TestForwardAdapterSuccessSynthesizesID(t *testing.T) {
	legacy := &fakeLegacy{name: "legacy-a", processResult: true}
	adapter := NewForwardAdapter(legacy)

	result, err := adapter.ProcessPayment(context.Background(), model.PaymentRequest{}, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsSuccess || result.Status != model.PaymentCompleted {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.GatewayTransactionID != "legacy-a_t1" {
		t.Fatalf("expected synthesized id, got %q", result.GatewayTransactionID)
	}
}

func TestForwardAdapterFalseMapsToLegacyGatewayError(t *testing.T) {
	legacy := &fakeLegacy{name: "legacy-a", processResult: false}
	adapter := NewForwardAdapter(legacy)

	result, err := adapter.ProcessPayment(context.Background(), model.PaymentRequest{}, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsSuccess || result.ErrorCode != model.ErrCodeLegacyGatewayError || !result.IsRetryable {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestForwardAdapterErrorMapsToLegacyGatewayException(t *testing.T) {
	legacy := &fakeLegacy{name: "legacy-a", processErr: errors.New("network down")}
	adapter := NewForwardAdapter(legacy)

	result, err := adapter.ProcessPayment(context.Background(), model.PaymentRequest{}, "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsSuccess || result.ErrorCode != model.ErrCodeLegacyGatewayExc || !result.IsRetryable {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestForwardAdapterUnsupportedOperations(t *testing.T) {
	legacy := &fakeLegacy{name: "legacy-a"}
	adapter := NewForwardAdapter(legacy)

	if result, _ := adapter.GetPaymentStatus(context.Background(), "t1"); result.ErrorCode != model.ErrCodeNotSupported {
		t.Fatalf("expected NOT_SUPPORTED, got %+v", result)
	}
	if result, _ := adapter.CancelPayment(context.Background(), "t1"); result.ErrorCode != model.ErrCodeNotSupported {
		t.Fatalf("expected NOT_SUPPORTED, got %+v", result)
	}
}

type fakeModern struct {
	processResult model.PaymentResult
	refundResult  model.RefundResult
}

func (f *fakeModern) Name() string { return "modern" }
func (f *fakeModern) GetCommission(currency money.Currency) decimal.Decimal {
	return decimal.NewFromFloat(0.01)
}
func (f *fakeModern) IsAvailable(ctx context.Context) bool         { return true }
func (f *fakeModern) SupportsCurrency(currency money.Currency) bool { return true }
func (f *fakeModern) ProcessPayment(ctx context.Context, request model.PaymentRequest, transactionID string) (model.PaymentResult, error) {
	return f.processResult, nil
}
func (f *fakeModern) GetPaymentStatus(ctx context.Context, transactionID string) (model.PaymentResult, error) {
	return f.processResult, nil
}
func (f *fakeModern) Refund(ctx context.Context, transactionID string, amount decimal.Decimal, refundID string) (model.RefundResult, error) {
	return f.refundResult, nil
}
func (f *fakeModern) GetRefundStatus(ctx context.Context, refundID string) (model.RefundResult, error) {
	return f.refundResult, nil
}
func (f *fakeModern) CancelPayment(ctx context.Context, transactionID string) (model.PaymentResult, error) {
	return model.PaymentResult{}, nil
}

func TestReverseAdapterReportsBooleanSuccess(t *testing.T) {
	modern := &fakeModern{processResult: model.PaymentResult{IsSuccess: true}}
	adapter := NewReverseAdapter(modern)

	ok, err := adapter.ProcessPayment(context.Background(), model.PaymentRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true")
	}
}
