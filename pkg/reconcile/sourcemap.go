package reconcile

import (
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/sources"
)

// SourceMap is the identity-keyed union of the discovery sources. A record
// inserted under an existing key replaces the earlier record entirely; the
// key keeps the position of its first insertion.
type SourceMap struct {
	records   map[string]assets.Record
	origin    map[string]sources.ID
	order     []string
	overrides int
	skipped   int
}

// NewSourceMap creates an empty source map.
func NewSourceMap() *SourceMap {
	return &SourceMap{
		records: make(map[string]assets.Record),
		origin:  make(map[string]sources.ID),
	}
}

// Add inserts the records of one source. Records without a name are skipped.
// It returns the number of existing keys that were replaced.
func (m *SourceMap) Add(id sources.ID, records []assets.Record) int {
	replaced := 0
	for _, rec := range records {
		key := rec.Key()
		if key == "" {
			m.skipped++
			continue
		}
		if _, ok := m.records[key]; ok {
			replaced++
		} else {
			m.order = append(m.order, key)
		}
		m.records[key] = rec
		m.origin[key] = id
	}
	m.overrides += replaced
	return replaced
}

// Get returns the record stored under key.
func (m *SourceMap) Get(key string) (assets.Record, bool) {
	rec, ok := m.records[key]
	return rec, ok
}

// Has reports whether key is present.
func (m *SourceMap) Has(key string) bool {
	_, ok := m.records[key]
	return ok
}

// Origin returns the source whose record is stored under key.
func (m *SourceMap) Origin(key string) (sources.ID, bool) {
	id, ok := m.origin[key]
	return id, ok
}

// Len returns the number of distinct keys.
func (m *SourceMap) Len() int {
	return len(m.records)
}

// Keys returns the keys in first-insertion order.
func (m *SourceMap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Overrides returns how many insertions replaced an existing key.
func (m *SourceMap) Overrides() int {
	return m.overrides
}

// Skipped returns how many records were ignored for having no name.
func (m *SourceMap) Skipped() int {
	return m.skipped
}

// BuildSourceMap inserts each discovery source in precedence order. Sources
// with records that the precedence does not name are inserted after the
// listed ones, in registry order. Sources missing from records contribute
// nothing.
func BuildSourceMap(precedence sources.Precedence, records map[sources.ID][]assets.Record) *SourceMap {
	m := NewSourceMap()
	for _, id := range precedence {
		m.Add(id, records[id])
	}
	for _, id := range unlisted(precedence, records) {
		m.Add(id, records[id])
	}
	return m
}

// unlisted returns the discovery sources that have records but are not
// named by precedence.
func unlisted(precedence sources.Precedence, records map[sources.ID][]assets.Record) []sources.ID {
	var present []sources.ID
	for _, id := range sources.IDs() {
		if len(records[id]) > 0 {
			present = append(present, id)
		}
	}
	return precedence.Unlisted(present)
}
