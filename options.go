package assetmap

import (
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/history"
)

// options configures a Client.
type options struct {
	history     *history.Store
	runID       string
	summaryFile string
}

func defaults() *options {
	return &options{}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Option is a function that configures a Client.
type Option func(*options) error

// WithHistory records every completed run in the given ledger.
func WithHistory(store *history.Store) Option {
	return func(o *options) error {
		if store == nil {
			return &errors.ValidationError{Field: "history", Message: "cannot be nil"}
		}
		o.history = store
		return nil
	}
}

// WithRunID fixes the identifier of the next run instead of generating one.
func WithRunID(id string) Option {
	return func(o *options) error {
		if id == "" {
			return &errors.ValidationError{Field: "run_id", Message: "cannot be empty"}
		}
		o.runID = id
		return nil
	}
}

// WithSummaryFile appends the run summary to path in addition to the file
// named by $GITHUB_STEP_SUMMARY.
func WithSummaryFile(path string) Option {
	return func(o *options) error {
		o.summaryFile = path
		return nil
	}
}
