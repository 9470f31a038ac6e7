// Package emoji provides the status symbols printed ahead of CLI notices.
package emoji

const (
	// Success marks a completed write or a source that was found.
	Success = "✓"

	// Error marks a source that failed to load.
	Error = "✗"

	// Warning marks a degraded run or a skipped write.
	Warning = "!"

	// Optional marks a disabled source.
	Optional = "-"
)
