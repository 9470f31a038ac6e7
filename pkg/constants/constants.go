// Package constants provides shared constants used throughout the assetmap codebase.
// This includes file permissions, sentinels, column names of the master inventory
// and defaults that should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Timeout constants
const (
	// ShutdownTimeout bounds cleanup work after a failed or interrupted run
	ShutdownTimeout = 5 * time.Second
)

// Default values
const (
	// DefaultOutputFile is the name of the reconciled inventory written by a run
	DefaultOutputFile = "Final_Inventory_Complete.csv"

	// DefaultMasterFile is the default master inventory file name
	DefaultMasterFile = "Inventory.csv"

	// DefaultCoverageSkipRows is the number of banner rows above the header of an agent report
	DefaultCoverageSkipRows = 3

	// DefaultPurgePattern matches legacy desktop operating systems
	DefaultPurgePattern = `Windows 10|Windows 11`

	// SummaryEnvVar names the environment-provided file run summaries are appended to
	SummaryEnvVar = "GITHUB_STEP_SUMMARY"

	// EnvPrefix is the prefix for environment overrides of configuration keys
	EnvPrefix = "ASSETMAP"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
