package sources

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
)

// ID represents the identifier of a discovery source category.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Source categories.
const (
	VMwareID   ID = "vmware"
	ProxmoxID  ID = "proxmox"
	CoverageID ID = "coverage"
)

// IDs returns all source categories.
func IDs() []ID {
	return []ID{
		VMwareID,
		ProxmoxID,
		CoverageID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// IsDiscovery reports whether the source contributes assets to the merged
// source map. The coverage report only enriches existing rows.
func (id ID) IsDiscovery() bool {
	return id == VMwareID || id == ProxmoxID
}

// Technology returns the technology tag stamped on records of this source.
func (id ID) Technology() assets.Source {
	switch id {
	case VMwareID:
		return assets.SourceVMware
	case ProxmoxID:
		return assets.SourceProxmox
	case CoverageID:
		return assets.SourceCoverage
	}
	return assets.Source(id)
}

// ParseID parses a source ID case-insensitively.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !id.IsValid() {
		return "", &errors.ValidationError{
			Field:   "source",
			Value:   s,
			Message: fmt.Sprintf("unknown source %q (valid: %v)", s, IDs()),
		}
	}
	return id, nil
}

// Normalizer converts one raw source table into canonical records.
//
// Implementations drop filtered rows, rename source columns into canonical
// fields, derive computed fields and replace placeholders with the Unknown
// sentinel. A nil or empty table yields no records and no error.
type Normalizer interface {
	// ID returns the source category this normalizer handles
	ID() ID

	// Normalize filters and converts the rows of a raw table
	Normalize(ctx context.Context, table *inventory.Table) ([]assets.Record, error)
}
