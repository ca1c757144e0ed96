package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"payment-orchestrator/internal/apperrors"
	"payment-orchestrator/internal/httpjson"
)

type notificationPayload struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// WebhookHandler ingests out-of-band gateway notifications and forwards
// them to the processor's HandleNotification hook. It never validates
// provider signatures itself — that belongs to a collaborator transport
// layer, out of the core's scope per spec.md §1.
type WebhookHandler struct {
	processor Processor
}

// NewWebhookHandler builds a WebhookHandler over processor.
func NewWebhookHandler(processor Processor) *WebhookHandler {
	return &WebhookHandler{processor: processor}
}

// Notify handles POST /webhooks/{gateway}.
func (h *WebhookHandler) Notify(w http.ResponseWriter, r *http.Request) {
	gateway := chi.URLParam(r, "gateway")

	var body notificationPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.WriteAPIError(w, apperrors.NewValidationError("request_body", "invalid request body"))
		return
	}
	if body.TransactionID == "" {
		apperrors.WriteAPIError(w, apperrors.NewValidationError("transaction_id", "is required"))
		return
	}

	h.processor.HandleNotification(body.TransactionID, body.Status)

	log.Info().
		Str("gateway", gateway).
		Str("transaction_id", body.TransactionID).
		Str("status", body.Status).
		Msg("webhook notification applied")

	httpjson.WriteSuccess(w, map[string]string{"status": "accepted"})
}
