package base

import (
	"strings"

	"github.com/agentstation/assetmap/pkg/assets"
)

// MatchKind selects how a location matcher compares a value.
type MatchKind string

// Matcher kinds.
const (
	MatchPrefix   MatchKind = "prefix"
	MatchEquals   MatchKind = "equals"
	MatchContains MatchKind = "contains"
)

// LocationMatcher tests one upper-cased value. Excludes apply to contains
// matchers and veto a match when any of them is also present, which keeps
// overlapping fragments such as "VLC" and "VLCX" apart.
type LocationMatcher struct {
	Kind     MatchKind
	Value    string
	Excludes []string
}

// Match reports whether the already upper-cased value matches.
func (m LocationMatcher) Match(value string) bool {
	want := strings.ToUpper(m.Value)
	switch m.Kind {
	case MatchPrefix:
		return strings.HasPrefix(value, want)
	case MatchEquals:
		return value == want
	case MatchContains:
		if !strings.Contains(value, want) {
			return false
		}
		for _, ex := range m.Excludes {
			if strings.Contains(value, strings.ToUpper(ex)) {
				return false
			}
		}
		return true
	}
	return false
}

// SiteRule assigns Site when any of its matchers matches.
type SiteRule struct {
	Site     string
	Matchers []LocationMatcher
}

// LocationRules derives the location field from another canonical field.
// Rules are evaluated in order and the first match wins.
type LocationRules struct {
	// From is the field the site is derived from.
	From assets.Field
	// Rules in precedence order.
	Rules []SiteRule
	// Passthrough keeps the raw value when no rule matches.
	Passthrough bool
}

// Classify returns the site for a raw value.
func (lr LocationRules) Classify(raw string) string {
	value := strings.ToUpper(strings.TrimSpace(raw))
	for _, rule := range lr.Rules {
		for _, m := range rule.Matchers {
			if m.Match(value) {
				return rule.Site
			}
		}
	}
	if lr.Passthrough {
		return assets.Normalize(raw)
	}
	return assets.Unknown
}

// Prefix returns a prefix matcher.
func Prefix(v string) LocationMatcher { return LocationMatcher{Kind: MatchPrefix, Value: v} }

// Equals returns an exact matcher.
func Equals(v string) LocationMatcher { return LocationMatcher{Kind: MatchEquals, Value: v} }

// Contains returns a substring matcher vetoed by any of excludes.
func Contains(v string, excludes ...string) LocationMatcher {
	return LocationMatcher{Kind: MatchContains, Value: v, Excludes: excludes}
}
