package sources

// Options tunes a normalizer built from a registered factory.
type Options struct {
	// LocationPassthrough keeps the raw location value when no site rule
	// matches instead of substituting Unknown.
	LocationPassthrough bool

	// ClientOSPattern overrides the desktop OS exclusion pattern.
	ClientOSPattern string

	// NameColumn overrides the raw column holding the asset name.
	NameColumn string
}

// Option is a function that configures normalizer Options.
type Option func(*Options)

// ApplyOptions applies the given options and returns the result.
func ApplyOptions(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithLocationPassthrough keeps unmatched location values verbatim.
func WithLocationPassthrough(enabled bool) Option {
	return func(o *Options) {
		o.LocationPassthrough = enabled
	}
}

// WithClientOSPattern replaces the desktop OS exclusion pattern.
func WithClientOSPattern(pattern string) Option {
	return func(o *Options) {
		o.ClientOSPattern = pattern
	}
}

// WithNameColumn reads the asset name from a different raw column.
func WithNameColumn(column string) Option {
	return func(o *Options) {
		o.NameColumn = column
	}
}
