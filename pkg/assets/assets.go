// Package assets defines the canonical asset record every discovery source is
// normalized into, the identity key used to match records across tables, and
// the sentinel rules that keep placeholder values out of the inventory.
//
// Example usage:
//
//	rec := assets.NewRecord(assets.SourceVMware)
//	rec.Set(assets.FieldName, " Host1 ")
//	key := rec.Key() // "host1"
package assets

import (
	"fmt"
	"strings"
)

// Unknown is the sentinel substituted for every absent or placeholder value.
const Unknown = "Unknown"

// placeholders are the case-folded tokens that carry no value. Besides the
// dash placeholders they cover the null markers spreadsheet exports emit.
var placeholders = map[string]struct{}{
	"-":    {},
	"nan":  {},
	"null": {},
	"none": {},
	"n/a":  {},
	"#n/a": {},
	"<na>": {},
}

// IsPlaceholder reports whether v carries no real value.
func IsPlaceholder(v string) bool {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return true
	}
	_, ok := placeholders[strings.ToLower(trimmed)]
	return ok
}

// IsAbsent reports whether v is a placeholder or already the Unknown sentinel.
func IsAbsent(v string) bool {
	return IsPlaceholder(v) || v == Unknown
}

// Normalize returns Unknown for placeholder values and v unchanged otherwise.
func Normalize(v string) string {
	if IsPlaceholder(v) {
		return Unknown
	}
	return v
}

// ResolveField returns primary when it carries a value, else fallback when it
// does, else def. Placeholders and the Unknown sentinel count as no value.
func ResolveField(primary, fallback, def string) string {
	if !IsAbsent(primary) {
		return primary
	}
	if !IsAbsent(fallback) {
		return fallback
	}
	return def
}

// Key derives the identity key of a name: coerced to string, trimmed and
// lower-cased. A nil value yields the empty key, which never matches.
func Key(v any) string {
	if v == nil {
		return ""
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	return strings.ToLower(strings.TrimSpace(s))
}
