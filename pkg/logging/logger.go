// Package logging sets up the zerolog loggers used by reconciliation runs.
// Runs attached to a terminal log human-readable lines; scheduled runs log
// one JSON object per event so the output can be shipped unchanged.
//
// The pipeline never holds a logger of its own. Every stage reads the logger
// carried by its context and narrows it with the run, source or file it is
// working on:
//
//	ctx = logging.WithSource(ctx, "proxmox")
//	logging.FromContext(ctx).Info().Int("records", 37).Msg("Loaded source")
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu            sync.RWMutex
	defaultLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Default returns the logger used when a context carries none.
func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := defaultLogger
	return &l
}

// SetDefault replaces the fallback logger.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}
