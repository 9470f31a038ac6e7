// Package base implements the stage pipeline shared by every source
// normalizer. A source is described by a Profile and run by a Normalizer.
package base

import (
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/sources"
)

// Mapping renames one raw column into a canonical field.
type Mapping struct {
	Column string
	Field  assets.Field
}

// StateFilter keeps rows whose state column equals Token after trimming and
// case folding.
type StateFilter struct {
	Column string
	Token  string
}

// PatternFilter drops rows whose column matches a case-insensitive regex.
type PatternFilter struct {
	Columns []string
	Pattern string
	// ClientOS marks the desktop OS exclusion, which options may override.
	ClientOS bool
}

// Profile is the declarative description of a source.
type Profile struct {
	ID sources.ID

	// NameColumn is the raw column holding the asset name.
	NameColumn string

	// PowerState keeps powered on rows only. Nil disables the stage.
	PowerState *StateFilter

	// PlaceholderColumn drops rows flagged true or 1, such as replication
	// placeholders.
	PlaceholderColumn string

	// Exclusions drop template, replica and client OS rows.
	Exclusions []PatternFilter

	// Mappings rename raw columns. Columns not listed are dropped.
	Mappings []Mapping

	// Location derives the location field. Nil disables the stage.
	Location *LocationRules
}

// Apply returns a copy of the profile with normalizer options applied.
func (p Profile) Apply(opts *sources.Options) Profile {
	if opts == nil {
		return p
	}
	out := p
	if opts.NameColumn != "" {
		old := p.NameColumn
		out.NameColumn = opts.NameColumn
		out.Mappings = make([]Mapping, len(p.Mappings))
		for i, m := range p.Mappings {
			if m.Column == old {
				m.Column = opts.NameColumn
			}
			out.Mappings[i] = m
		}
		out.Exclusions = make([]PatternFilter, len(p.Exclusions))
		for i, f := range p.Exclusions {
			cols := make([]string, len(f.Columns))
			for j, c := range f.Columns {
				if c == old {
					c = opts.NameColumn
				}
				cols[j] = c
			}
			f.Columns = cols
			out.Exclusions[i] = f
		}
	}
	if opts.ClientOSPattern != "" {
		excl := make([]PatternFilter, len(out.Exclusions))
		copy(excl, out.Exclusions)
		for i, f := range excl {
			if f.ClientOS {
				excl[i].Pattern = opts.ClientOSPattern
			}
		}
		out.Exclusions = excl
	}
	if p.Location != nil {
		loc := *p.Location
		loc.Passthrough = loc.Passthrough || opts.LocationPassthrough
		out.Location = &loc
	}
	return out
}
