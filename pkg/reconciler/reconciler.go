// Package reconciler resolves author references from submissions against
// the author registry of a dataset.
//
// A reference is either a registry key, which must already exist, or an
// inline author record. Inline records are matched against the registry in
// order by a Matcher; the first match is updated in place, and a record
// that matches nothing is inserted under a key derived from its name.
package reconciler

import (
	"context"
	"strings"

	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/logging"
)

// Outcome describes what resolving a reference did to the registry.
type Outcome string

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	return string(o)
}

const (
	// OutcomeReferenced means the reference was a key that already existed.
	OutcomeReferenced Outcome = "referenced"
	// OutcomeMerged means an inline record matched and updated an existing author.
	OutcomeMerged Outcome = "merged"
	// OutcomeCreated means an inline record was inserted as a new author.
	OutcomeCreated Outcome = "created"
)

// Resolution is the result of resolving one author reference.
type Resolution struct {
	Key     library.AuthorKey
	Author  *library.Author
	Outcome Outcome
	// Changed lists the fields a merge modified.
	Changed []string
}

// Reconciler resolves author references with a configurable Matcher.
type Reconciler struct {
	matcher Matcher
}

// New creates a Reconciler. Without options the FieldMatcher is used.
func New(opts ...Option) (*Reconciler, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler{matcher: o.matcher}, nil
}

// Matcher returns the matcher in use.
func (r *Reconciler) Matcher() Matcher {
	return r.matcher
}

// Resolve resolves ref using the default FieldMatcher.
func Resolve(ctx context.Context, ref library.AuthorRef, reg *library.Registry) (Resolution, error) {
	r := &Reconciler{matcher: FieldMatcher{}}
	return r.Resolve(ctx, ref, reg)
}

// Resolve resolves ref against reg, updating reg when the reference is an
// inline record. On error reg is left untouched.
func (r *Reconciler) Resolve(ctx context.Context, ref library.AuthorRef, reg *library.Registry) (Resolution, error) {
	logger := logging.FromContext(ctx)

	if ref.IsKey() {
		author, ok := reg.Get(ref.Key)
		if !ok {
			return Resolution{}, errors.NewReferentialError("", ref.Key.String())
		}
		logger.Debug().Str("key", ref.Key.String()).Msg("Author key referenced")
		return Resolution{Key: ref.Key, Author: author, Outcome: OutcomeReferenced}, nil
	}

	if ref.Inline == nil {
		return Resolution{}, &errors.ReconciliationError{Err: errors.ErrInvalidInput}
	}
	candidate := ref.Inline.Trimmed()

	var (
		matchKey library.AuthorKey
		match    *library.Author
	)
	reg.ForEach(func(key library.AuthorKey, existing *library.Author) bool {
		if r.matcher.Match(&candidate, existing) {
			matchKey, match = key, existing
			return false
		}
		return true
	})

	if match != nil {
		changed := merge(match, &candidate)
		logger.Info().
			Str("key", matchKey.String()).
			Str("matcher", r.matcher.Name()).
			Strs("changed", changed).
			Msg("Merged author into existing record")
		return Resolution{Key: matchKey, Author: match, Outcome: OutcomeMerged, Changed: changed}, nil
	}

	if candidate.Name == "" {
		return Resolution{}, &errors.ReconciliationError{
			Candidate: candidate.Describe(),
			Err:       errors.ErrAuthorMustHaveName,
		}
	}

	key := DeriveKey(candidate.Name, reg)
	author := candidate.Clone()
	if err := reg.Add(key, author); err != nil {
		return Resolution{}, &errors.ReconciliationError{Candidate: candidate.Describe(), Err: err}
	}
	logger.Info().Str("key", key.String()).Msg("Created author")
	return Resolution{Key: key, Author: author, Outcome: OutcomeCreated}, nil
}

// merge copies every populated candidate field onto existing and unions the
// affiliations. It returns the fields that changed.
func merge(existing, candidate *library.Author) []string {
	var changed []string
	for _, f := range library.ScalarFields {
		v := candidate.Field(f)
		if v == "" || existing.Field(f) == v {
			continue
		}
		existing.SetField(f, v)
		changed = append(changed, f)
	}

	added := false
	for _, aff := range candidate.Affiliations {
		if containsFold(existing.Affiliations, aff) {
			continue
		}
		existing.Affiliations = append(existing.Affiliations, aff)
		added = true
	}
	if added {
		changed = append(changed, library.FieldAffiliations)
	}
	return changed
}

func containsFold(values []string, v string) bool {
	for _, existing := range values {
		if equalFold(existing, v) || strings.TrimSpace(existing) == strings.TrimSpace(v) {
			return true
		}
	}
	return false
}
