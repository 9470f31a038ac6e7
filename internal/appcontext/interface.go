// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App so they can be tested with Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/assetmap"
	"github.com/agentstation/assetmap/pkg/config"
	"github.com/agentstation/assetmap/pkg/history"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/assetmap/app implements this interface.
type Interface interface {
	// RunConfig returns the reconciliation settings loaded from config
	// files, environment and .env files. Commands may modify the returned
	// copy with their own flags.
	RunConfig() *config.Run

	// Client creates a reconciliation client for cfg.
	Client(cfg *config.Run, opts ...assetmap.Option) (assetmap.Client, error)

	// History opens the run ledger at path.
	History(ctx context.Context, path string) (*history.Store, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
