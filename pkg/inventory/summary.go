package inventory

import (
	"fmt"
	"sort"
	"strings"
)

// Summary holds the status counts of an inventory table.
type Summary struct {
	Existing   int `json:"existing" yaml:"existing"`
	Removed    int `json:"removed" yaml:"removed"`
	NewlyAdded int `json:"newly_added" yaml:"newly_added"`
	Other      int `json:"other,omitempty" yaml:"other,omitempty"`
	Total      int `json:"total" yaml:"total"`
}

// Summarize counts rows per lifecycle status. Rows with any other status
// value, including tables without a Status column, are counted as Other.
func Summarize(t *Table) Summary {
	s := Summary{Total: t.Len()}
	for i := 0; i < t.Len(); i++ {
		switch Status(t.Value(i, ColumnStatus)) {
		case StatusExisting:
			s.Existing++
		case StatusRemoved:
			s.Removed++
		case StatusNewlyAdded:
			s.NewlyAdded++
		default:
			s.Other++
		}
	}
	return s
}

// Count returns the number of rows with the given status.
func (s Summary) Count(status Status) int {
	switch status {
	case StatusExisting:
		return s.Existing
	case StatusRemoved:
		return s.Removed
	case StatusNewlyAdded:
		return s.NewlyAdded
	}
	return 0
}

// String returns a one-line summary.
func (s Summary) String() string {
	return fmt.Sprintf("%d rows: %d existing, %d removed, %d newly added",
		s.Total, s.Existing, s.Removed, s.NewlyAdded)
}

// ValueCount is one entry of a column value histogram.
type ValueCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// ValueCounts returns how often each value occurs in a column, most frequent
// first and ties broken by value. A missing column yields nil.
func ValueCounts(t *Table, column string) []ValueCount {
	if !t.HasColumn(column) {
		return nil
	}
	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		counts[t.Value(i, column)]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.Compare(out[i].Value, out[j].Value) < 0
	})
	return out
}
