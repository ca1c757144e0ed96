package api

import (
	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/model"
	"payment-orchestrator/internal/money"
)

// processPaymentRequest is the JSON body for POST /payments.
type processPaymentRequest struct {
	TransactionID      string            `json:"transaction_id"`
	Amount             decimal.Decimal   `json:"amount"`
	Currency           string            `json:"currency"`
	SourceAccount      string            `json:"source_account"`
	DestinationAccount string            `json:"destination_account"`
	Metadata           map[string]string `json:"metadata"`
	TargetCurrency     string            `json:"target_currency,omitempty"`
}

func (r processPaymentRequest) toDomain() model.PaymentRequest {
	return model.PaymentRequest{
		Amount:             r.Amount,
		Currency:           money.Currency(r.Currency),
		SourceAccount:      r.SourceAccount,
		DestinationAccount: r.DestinationAccount,
		Metadata:           r.Metadata,
	}
}

// refundRequest is the JSON body for POST /payments/{id}/refund.
type refundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// transactionResponse mirrors model.Transaction for JSON transport.
type transactionResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	GatewayUsed  string          `json:"gateway_used,omitempty"`
	Commission   decimal.Decimal `json:"commission"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Timestamp    string          `json:"timestamp"`
}

func toTransactionResponse(txn *model.Transaction) transactionResponse {
	return transactionResponse{
		ID:           txn.ID,
		Status:       string(txn.Status),
		Amount:       txn.Request.Amount,
		Currency:     string(txn.Request.Currency),
		GatewayUsed:  txn.GatewayUsed,
		Commission:   txn.Commission,
		ErrorMessage: txn.ErrorMessage,
		Timestamp:    txn.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}
}
