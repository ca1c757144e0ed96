package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewServer builds the chi router exposing the orchestration core over
// HTTP, matching the teacher's NewServer layout.
func NewServer(processor Processor) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	paymentHandler := NewPaymentHandler(processor)
	webhookHandler := NewWebhookHandler(processor)

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.ProcessPayment)
		r.Get("/{id}", paymentHandler.GetPayment)
		r.Post("/{id}/refund", paymentHandler.RefundPayment)
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Post("/{gateway}", webhookHandler.Notify)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/cleanup", paymentHandler.Cleanup)
	})

	return r
}
