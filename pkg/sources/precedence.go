package sources

import (
	"fmt"

	"github.com/agentstation/assetmap/pkg/errors"
)

// Precedence is the order discovery sources are inserted into the merged
// source map. On an identity key collision the later source replaces the
// earlier record entirely.
type Precedence []ID

// DefaultPrecedence inserts VMware first and Proxmox second, so Proxmox wins
// for assets reported by both.
func DefaultPrecedence() Precedence {
	return Precedence{VMwareID, ProxmoxID}
}

// ParsePrecedence parses an ordered list of source names.
func ParsePrecedence(names []string) (Precedence, error) {
	p := make(Precedence, 0, len(names))
	for _, name := range names {
		id, err := ParseID(name)
		if err != nil {
			return nil, err
		}
		p = append(p, id)
	}
	return p, p.Validate()
}

// Validate checks that every entry is a discovery source listed once.
func (p Precedence) Validate() error {
	if len(p) == 0 {
		return &errors.ValidationError{Field: "precedence", Message: "at least one source is required"}
	}
	seen := make(map[ID]bool, len(p))
	for _, id := range p {
		if !id.IsDiscovery() {
			return &errors.ValidationError{
				Field:   "precedence",
				Value:   id,
				Message: fmt.Sprintf("%s is not a discovery source", id),
			}
		}
		if seen[id] {
			return &errors.ValidationError{
				Field:   "precedence",
				Value:   id,
				Message: fmt.Sprintf("%s listed more than once", id),
			}
		}
		seen[id] = true
	}
	return nil
}

// Rank returns the insertion position of id, or -1 when it is not listed.
func (p Precedence) Rank(id ID) int {
	for i, candidate := range p {
		if candidate == id {
			return i
		}
	}
	return -1
}

// Unlisted returns the discovery sources in ids that p does not name, in
// the order given.
func (p Precedence) Unlisted(ids []ID) []ID {
	var out []ID
	for _, id := range ids {
		if id.IsDiscovery() && p.Rank(id) < 0 {
			out = append(out, id)
		}
	}
	return out
}
