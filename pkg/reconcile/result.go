package reconcile

import (
	"fmt"
	"time"

	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/sources"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Metadata about the run
	Metadata ResultMetadata

	// Statistics about the run
	Stats ResultStatistics

	// Warnings contains non-critical issues
	Warnings []string
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	Precedence  sources.Precedence
	PurgePolicy PurgePolicy
}

// ResultStatistics contains counts about the reconciliation.
type ResultStatistics struct {
	MasterRows int
	Existing   int
	Removed    int
	NewlyAdded int
	Purged     int

	// SourceKeys is the number of distinct keys in the merged source map
	SourceKeys int
	// Overrides counts source records replaced on a key collision
	Overrides int

	CoverageRecords    int
	CoverageDuplicates int
	CoverageMatched    int

	TotalRows int
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Metadata: ResultMetadata{StartTime: time.Now()},
		Warnings: []string{},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := fmt.Sprintf("Reconciled %d master rows against %d discovered assets: %d existing, %d removed, %d newly added",
		r.Stats.MasterRows, r.Stats.SourceKeys, r.Stats.Existing, r.Stats.Removed, r.Stats.NewlyAdded)
	if r.Stats.Purged > 0 {
		s += fmt.Sprintf(", %d purged", r.Stats.Purged)
	}
	if r.Stats.CoverageRecords > 0 {
		s += fmt.Sprintf("; coverage updated %d rows", r.Stats.CoverageMatched)
	}
	return s + "."
}

// InventorySummary returns the status counts of the reconciled rows.
func (r *Result) InventorySummary() inventory.Summary {
	return inventory.Summary{
		Existing:   r.Stats.Existing,
		Removed:    r.Stats.Removed,
		NewlyAdded: r.Stats.NewlyAdded,
		Total:      r.Stats.TotalRows,
	}
}
