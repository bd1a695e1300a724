// Package query holds the search layer over repository snapshots. At clinic
// scale a linear scan per search is the whole algorithm; there is no index.
package query

import (
	"strings"
)

// Matcher tests text fields against a search term, ignoring case.
type Matcher struct {
	term string
}

// NewMatcher prepares term for repeated matching. Spaces in term are
// significant; only the empty term matches everything.
func NewMatcher(term string) Matcher {
	return Matcher{term: strings.ToLower(term)}
}

// Empty reports whether the term matches everything
func (m Matcher) Empty() bool {
	return m.term == ""
}

// Match reports whether any field contains the term
func (m Matcher) Match(fields ...string) bool {
	if m.Empty() {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), m.term) {
			return true
		}
	}
	return false
}

// Filter returns a new slice with the items whose fields match term, in their
// original order. An empty term returns a copy of items.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	m := NewMatcher(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m.Empty() || m.Match(fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}
