package assetmap

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentstation/assetmap/pkg/config"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/reconcile"

	// register the VMware, Proxmox and coverage normalizers
	_ "github.com/agentstation/assetmap/internal/sources"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client runs reconciliations for one configuration.
type Client interface {
	// Discover reports which file each source category would read
	Discover(ctx context.Context) ([]Selection, error)

	// Run reconciles the master inventory and writes the results
	Run(ctx context.Context) (*Report, error)

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	*hooks

	cfg     *config.Run
	options *options
	engine  *reconcile.Engine
}

// New creates a Client for cfg. Relative paths in cfg are resolved against
// its input directory; cfg itself is not modified.
func New(cfg *config.Run, opts ...Option) (Client, error) {
	if cfg == nil {
		return nil, &errors.ValidationError{Field: "config", Message: "cannot be nil"}
	}
	resolved := *cfg
	resolved.Resolve()
	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	engineOpts, err := resolved.EngineOptions()
	if err != nil {
		return nil, err
	}
	engine, err := reconcile.New(engineOpts...)
	if err != nil {
		return nil, errors.WrapResource("create", "engine", "", err)
	}

	return &client{
		hooks:   newHooks(),
		cfg:     &resolved,
		options: o,
		engine:  engine,
	}, nil
}

// nextRunID returns the configured run id or a fresh one.
func (c *client) nextRunID() string {
	if c.options.runID != "" {
		return c.options.runID
	}
	return uuid.NewString()
}
