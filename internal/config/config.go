// Package config loads the orchestration core's runtime configuration
// from environment variables, following the teacher's own
// internal/config/config.go getEnv/getEnvInt helper pattern.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the tunables the processor, router and rate-cache
// collaborator need at construction time.
type Config struct {
	LogLevel    string
	ServiceName string

	// Payment gateway credentials for the optional legacy SDK-backed
	// providers; empty disables the corresponding provider.
	StripeSecretKey   string
	RazorpayKeyID     string
	RazorpayKeySecret string

	MaxRetryAttempts int
	RetryBaseDelay   time.Duration

	RateCacheTTL time.Duration

	// AuditDatabaseURL, when set, enables the optional Postgres-backed
	// transaction observer (internal/audit). The core itself never
	// takes on persistence.
	AuditDatabaseURL string

	HTTPPort string
}

// Load reads configuration from the environment, applying the defaults
// spec.md pins (3 retries, 5-minute rate cache).
func Load() *Config {
	return &Config{
		LogLevel:          getEnv("PAYMENT_CORE_LOG_LEVEL", "info"),
		ServiceName:       getEnv("PAYMENT_CORE_SERVICE_NAME", "payment-orchestrator"),
		StripeSecretKey:   getEnv("STRIPE_SECRET_KEY", ""),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		MaxRetryAttempts:  getEnvInt("PAYMENT_CORE_MAX_RETRY_ATTEMPTS", 3),
		RetryBaseDelay:    getEnvDuration("PAYMENT_CORE_RETRY_BASE_DELAY", time.Second),
		RateCacheTTL:      getEnvDuration("PAYMENT_CORE_RATE_CACHE_TTL", 5*time.Minute),
		AuditDatabaseURL:  getEnv("PAYMENT_CORE_AUDIT_DB_URL", ""),
		HTTPPort:          getEnv("PAYMENT_CORE_HTTP_PORT", "8090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
