package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/assetmap"
	"github.com/agentstation/assetmap/pkg/config"
	"github.com/agentstation/assetmap/pkg/history"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method falls back to a working default.
type Mock struct {
	RunConfigFunc    func() *config.Run
	ClientFunc       func(*config.Run, ...assetmap.Option) (assetmap.Client, error)
	HistoryFunc      func(context.Context, string) (*history.Store, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorFunc      func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Compile-time interface check.
var _ Interface = (*Mock)(nil)

// RunConfig returns the mock configuration or the defaults.
func (m *Mock) RunConfig() *config.Run {
	if m.RunConfigFunc != nil {
		return m.RunConfigFunc()
	}
	return config.Default()
}

// Client returns the mock client or a real one built from cfg.
func (m *Mock) Client(cfg *config.Run, opts ...assetmap.Option) (assetmap.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(cfg, opts...)
	}
	return assetmap.New(cfg, opts...)
}

// History returns the mock store or opens path.
func (m *Mock) History(ctx context.Context, path string) (*history.Store, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, path)
	}
	return history.Open(ctx, path)
}

// Logger returns the mock logger or a disabled logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	nop := zerolog.Nop()
	return &nop
}

// OutputFormat returns the mock format or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor returns the mock setting or true.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return true
}

// Version returns the mock version or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the mock commit or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the mock date or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the mock builder or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
