package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"payment-orchestrator/internal/api"
	"payment-orchestrator/internal/audit"
	"payment-orchestrator/internal/collaborators/balance"
	"payment-orchestrator/internal/collaborators/rate"
	"payment-orchestrator/internal/collaborators/validator"
	"payment-orchestrator/internal/config"
	"payment-orchestrator/internal/gateway"
	"payment-orchestrator/internal/gateway/providers"
	"payment-orchestrator/internal/logging"
	"payment-orchestrator/internal/money"
	"payment-orchestrator/internal/processor"
	"payment-orchestrator/internal/retry"
	"payment-orchestrator/internal/router"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.ServiceName)

	log.Info().
		Str("service", cfg.ServiceName).
		Str("port", cfg.HTTPPort).
		Msg("starting payment orchestrator")

	balances := balance.NewInMemoryService(nil)
	v := validator.New(balances)
	rates := rate.New(cfg.RateCacheTTL)

	var gateways []gateway.Modern
	gateways = append(gateways, providers.NewReference("reference-a", decimal.NewFromFloat(0.01),
		[]money.Currency{money.USD, money.EUR, money.RUB}, 1))
	gateways = append(gateways, providers.NewReference("reference-b", decimal.NewFromFloat(0.02),
		[]money.Currency{money.EUR, money.RUB}, 2))

	if cfg.StripeSecretKey != "" {
		stripeLegacy := providers.NewStripeLegacy(cfg.StripeSecretKey, decimal.NewFromFloat(0.025))
		gateways = append(gateways, gateway.NewForwardAdapter(stripeLegacy))
	}
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		razorpayLegacy := providers.NewRazorpayLegacy(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, decimal.NewFromFloat(0.02))
		gateways = append(gateways, gateway.NewForwardAdapter(razorpayLegacy))
	}

	gatewayRouter := router.New(gateways...)
	retryPolicy := retry.Policy{MaxAttempts: cfg.MaxRetryAttempts, BaseDelay: cfg.RetryBaseDelay}

	proc := processor.New(v, gatewayRouter, rates, retryPolicy)

	if cfg.AuditDatabaseURL != "" {
		auditObserver, err := audit.NewPostgresObserver(cfg.AuditDatabaseURL)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize audit sink, continuing without it")
		} else {
			proc = proc.WithObservers(auditObserver)
		}
	}

	server := api.NewServer(proc)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("payment orchestrator listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	cleanupTicker := time.NewTicker(5 * time.Minute)
	defer cleanupTicker.Stop()
	go func() {
		for range cleanupTicker.C {
			proc.Cleanup()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down payment orchestrator")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("payment orchestrator stopped")
}
