package base

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/assetmap/internal/matcher"
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/logging"
	"github.com/agentstation/assetmap/pkg/sources"
)

// Drop reasons reported in Stats.
const (
	DropPowerState  = "power_state"
	DropPlaceholder = "placeholder"
	DropExcluded    = "excluded"
	DropBlankName   = "blank_name"
)

// Stats counts what the filter stage did to a table.
type Stats struct {
	Input   int
	Kept    int
	Dropped map[string]int
}

type exclusion struct {
	columns []string
	match   matcher.Matcher
}

// Normalizer runs the shared filter, rename, location, sentinel and tag
// stages for one profile.
type Normalizer struct {
	profile    Profile
	exclusions []exclusion
}

var _ sources.Normalizer = (*Normalizer)(nil)

// New compiles a profile into a normalizer.
func New(p Profile) (*Normalizer, error) {
	if !p.ID.IsValid() {
		return nil, &errors.ValidationError{Field: "id", Value: p.ID, Message: "unknown source"}
	}
	if p.NameColumn == "" {
		return nil, &errors.ValidationError{Field: "name_column", Message: "cannot be empty"}
	}
	for _, m := range p.Mappings {
		if !m.Field.IsValid() {
			return nil, &errors.ValidationError{
				Field:   "mappings",
				Value:   m.Field,
				Message: fmt.Sprintf("column %q maps to unknown field %q", m.Column, m.Field),
			}
		}
	}
	n := &Normalizer{profile: p}
	for _, f := range p.Exclusions {
		m, err := matcher.New(matcher.Regex, f.Pattern, &matcher.Options{CaseInsensitive: true})
		if err != nil {
			return nil, errors.WrapValidation("exclusions", err)
		}
		n.exclusions = append(n.exclusions, exclusion{columns: f.Columns, match: m})
	}
	return n, nil
}

// MustNew is like New but panics on an invalid profile.
func MustNew(p Profile) *Normalizer {
	n, err := New(p)
	if err != nil {
		panic(err)
	}
	return n
}

// ID returns the source category.
func (n *Normalizer) ID() sources.ID {
	return n.profile.ID
}

// Profile returns the profile the normalizer runs.
func (n *Normalizer) Profile() Profile {
	return n.profile
}

// Normalize filters and converts the rows of a raw table.
func (n *Normalizer) Normalize(ctx context.Context, table *inventory.Table) ([]assets.Record, error) {
	records, stats, err := n.NormalizeWithStats(ctx, table)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().
		Str("source", n.profile.ID.String()).
		Int("input", stats.Input).
		Int("kept", stats.Kept).
		Interface("dropped", stats.Dropped).
		Msg("Normalized source table")
	return records, nil
}

// NormalizeWithStats is Normalize plus the filter counts.
func (n *Normalizer) NormalizeWithStats(ctx context.Context, table *inventory.Table) ([]assets.Record, Stats, error) {
	stats := Stats{Dropped: make(map[string]int)}
	if table == nil || table.Len() == 0 {
		return nil, stats, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, errors.ErrCanceled
	}
	if !table.HasColumn(n.profile.NameColumn) {
		logging.FromContext(ctx).Warn().
			Str("source", n.profile.ID.String()).
			Str("column", n.profile.NameColumn).
			Msg("Name column missing, every row is dropped")
	}

	stats.Input = table.Len()
	records := make([]assets.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		if reason := n.dropReason(table, i); reason != "" {
			stats.Dropped[reason]++
			continue
		}
		records = append(records, n.convert(table, i))
	}
	stats.Kept = len(records)
	return records, stats, nil
}

// dropReason returns why row i is filtered out, or "" to keep it.
func (n *Normalizer) dropReason(t *inventory.Table, i int) string {
	p := n.profile

	if p.PowerState != nil {
		if v, ok := t.Get(i, p.PowerState.Column); ok {
			if strings.ToLower(strings.TrimSpace(v)) != p.PowerState.Token {
				return DropPowerState
			}
		}
	}

	if p.PlaceholderColumn != "" {
		if v, ok := t.Get(i, p.PlaceholderColumn); ok && isTruthy(v) {
			return DropPlaceholder
		}
	}

	for _, ex := range n.exclusions {
		for _, col := range ex.columns {
			if v, ok := t.Get(i, col); ok && ex.match.Match(v) {
				return DropExcluded
			}
		}
	}

	if assets.IsAbsent(t.Value(i, p.NameColumn)) {
		return DropBlankName
	}
	return ""
}

// convert renames, derives location, normalizes sentinels and tags row i.
func (n *Normalizer) convert(t *inventory.Table, i int) assets.Record {
	p := n.profile
	rec := assets.NewRecord(p.ID.Technology())
	for _, m := range p.Mappings {
		if v, ok := t.Get(i, m.Column); ok {
			rec.Set(m.Field, v)
		}
	}
	rec.Set(assets.FieldName, strings.TrimSpace(rec.Name()))

	if p.Location != nil {
		if raw, ok := rec.Get(p.Location.From); ok {
			rec.Set(assets.FieldLocation, p.Location.Classify(raw))
		}
	}

	for f, v := range rec.Fields {
		rec.Fields[f] = assets.Normalize(v)
	}
	rec.Set(assets.FieldTechnologySource, p.ID.Technology().String())
	return rec
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "1.0":
		return true
	}
	return false
}
