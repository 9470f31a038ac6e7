package reconcile

import (
	"github.com/agentstation/assetmap/internal/matcher"
	"github.com/agentstation/assetmap/pkg/constants"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/sources"
)

// options configures an Engine.
type options struct {
	precedence   sources.Precedence
	purgePolicy  PurgePolicy
	purgePattern string
}

func defaultOptions() *options {
	return &options{
		precedence:   sources.DefaultPrecedence(),
		purgePolicy:  PurgeOff,
		purgePattern: constants.DefaultPurgePattern,
	}
}

// Option is a function that configures an Engine.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns engine options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithPrecedence sets the discovery source insertion order.
func WithPrecedence(p sources.Precedence) Option {
	return func(o *options) error {
		if err := p.Validate(); err != nil {
			return err
		}
		o.precedence = p
		return nil
	}
}

// WithPurgePolicy sets when rows matching the purge pattern are deleted.
func WithPurgePolicy(p PurgePolicy) Option {
	return func(o *options) error {
		if _, err := ParsePurgePolicy(string(p)); err != nil {
			return err
		}
		if p == "" {
			p = PurgeOff
		}
		o.purgePolicy = p
		return nil
	}
}

// WithPurgePattern sets the case-insensitive OS regex used by the purge.
func WithPurgePattern(pattern string) Option {
	return func(o *options) error {
		if pattern == "" {
			return &errors.ValidationError{
				Field:   "purge_pattern",
				Message: "cannot be empty",
			}
		}
		if _, err := matcher.New(matcher.Regex, pattern); err != nil {
			return errors.WrapValidation("purge_pattern", err)
		}
		o.purgePattern = pattern
		return nil
	}
}
