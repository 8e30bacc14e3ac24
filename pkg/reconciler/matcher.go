package reconciler

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/curator/pkg/library"
)

// Matcher decides whether a submitted author candidate is the same person
// as an existing registry record.
type Matcher interface {
	// Name returns a short identifier for logs
	Name() string

	// Match reports whether candidate identifies existing
	Match(candidate, existing *library.Author) bool
}

// FieldMatcher matches when any populated identity field of the candidate
// equals the same field of the record, ignoring case and surrounding
// whitespace. A single shared field is enough, so two different people
// sharing a display name are treated as one.
type FieldMatcher struct{}

// Name returns the matcher identifier.
func (FieldMatcher) Name() string { return "field" }

// Match implements Matcher.
func (FieldMatcher) Match(candidate, existing *library.Author) bool {
	for _, f := range library.ScalarFields {
		c := candidate.Field(f)
		if strings.TrimSpace(c) == "" {
			continue
		}
		if equalFold(c, existing.Field(f)) {
			return true
		}
	}
	return false
}

// StrictMatcher requires the names to match and every identity field
// populated on both sides to agree.
type StrictMatcher struct{}

// Name returns the matcher identifier.
func (StrictMatcher) Name() string { return "strict" }

// Match implements Matcher.
func (StrictMatcher) Match(candidate, existing *library.Author) bool {
	if !equalFold(candidate.Name, existing.Name) {
		return false
	}
	for _, f := range library.ScalarFields {
		c, e := strings.TrimSpace(candidate.Field(f)), strings.TrimSpace(existing.Field(f))
		if c == "" || e == "" {
			continue
		}
		if !equalFold(c, e) {
			return false
		}
	}
	return true
}

// equalFold compares two non-blank values under Unicode case folding.
func equalFold(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
