package reconcile

import (
	"fmt"
	"strings"

	"github.com/agentstation/assetmap/internal/matcher"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
)

// PurgePolicy controls the destructive removal of rows whose OS matches the
// purge pattern. It is distinct from the Removed status, which keeps rows.
type PurgePolicy string

// Purge policies.
const (
	// PurgeOff never deletes rows.
	PurgeOff PurgePolicy = "off"
	// PurgeAfterSynthesis deletes matching rows after new rows are appended,
	// so newly discovered assets are purged too.
	PurgeAfterSynthesis PurgePolicy = "after-synthesis"
	// PurgeBeforeSynthesis deletes matching master rows before new rows
	// are appended.
	PurgeBeforeSynthesis PurgePolicy = "before-synthesis"
)

// PurgePolicies returns all policies.
func PurgePolicies() []PurgePolicy {
	return []PurgePolicy{PurgeOff, PurgeAfterSynthesis, PurgeBeforeSynthesis}
}

// String returns the string representation of a policy.
func (p PurgePolicy) String() string {
	return string(p)
}

// ParsePurgePolicy parses a policy name. The empty string means off.
func ParsePurgePolicy(s string) (PurgePolicy, error) {
	p := PurgePolicy(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PurgeOff, nil
	}
	for _, known := range PurgePolicies() {
		if p == known {
			return p, nil
		}
	}
	return "", &errors.ValidationError{
		Field:   "purge_policy",
		Value:   s,
		Message: fmt.Sprintf("unknown policy %q (valid: %v)", s, PurgePolicies()),
	}
}

// purge returns t without the rows whose OS column matches m, and how many
// rows were removed.
func purge(t *inventory.Table, m matcher.Matcher) (*inventory.Table, int) {
	if !t.HasColumn(inventory.ColumnOS) {
		return t, 0
	}
	out := t.Filter(func(i int) bool {
		return !m.Match(t.Value(i, inventory.ColumnOS))
	})
	return out, t.Len() - out.Len()
}
