// Package logging configures the global zerolog logger used across the
// orchestration core, the same way salon-shared/logger does for the
// teacher's services.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger at the given level, tagging
// every record with the service name.
func Init(level, serviceName string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
