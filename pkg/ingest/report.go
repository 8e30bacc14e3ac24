package ingest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/reconciler"
	"github.com/agentstation/curator/pkg/store"
)

// BlockOutcome records how one fenced block was handled.
type BlockOutcome struct {
	Index   int       `json:"index" yaml:"index"`
	Kind    BlockKind `json:"kind" yaml:"kind"`
	Summary string    `json:"summary" yaml:"summary"`
}

// AuthorChange records what happened to one author reference.
type AuthorChange struct {
	Key     library.AuthorKey  `json:"key" yaml:"key"`
	Outcome reconciler.Outcome `json:"outcome" yaml:"outcome"`
	Changed []string           `json:"changed,omitempty" yaml:"changed,omitempty"`
}

// ListingChange records what happened to one submitted listing.
type ListingChange struct {
	Title   string              `json:"title" yaml:"title"`
	URL     string              `json:"url" yaml:"url"`
	Outcome store.UpsertOutcome `json:"outcome" yaml:"outcome"`
	Index   int                 `json:"index" yaml:"index"`
}

// Report describes a single ingestion run.
type Report struct {
	State    State           `json:"state" yaml:"state"`
	Trail    []State         `json:"trail" yaml:"trail"`
	DryRun   bool            `json:"dry_run" yaml:"dry_run"`
	Blocks   []BlockOutcome  `json:"blocks" yaml:"blocks"`
	Authors  []AuthorChange  `json:"authors" yaml:"authors"`
	Listings []ListingChange `json:"listings" yaml:"listings"`
}

func (r *Report) advance(s State) {
	r.State = s
	r.Trail = append(r.Trail, s)
}

// Succeeded reports whether the run reached its final state.
func (r *Report) Succeeded() bool {
	if r.DryRun {
		return r.State == StateValidated
	}
	return r.State == StatePersisted
}

// String summarizes the run on one line.
func (r *Report) String() string {
	trail := make([]string, len(r.Trail))
	for i, s := range r.Trail {
		trail[i] = s.String()
	}
	return fmt.Sprintf("%s: %d block(s), %d author change(s), %d listing change(s) [%s]",
		r.State, len(r.Blocks), len(r.Authors), len(r.Listings), strings.Join(trail, " -> "))
}

// addAuthor records an author change, collapsing repeats of the same key
// so that created outranks merged outranks referenced.
func (r *Report) addAuthor(res reconciler.Resolution) {
	rank := map[reconciler.Outcome]int{
		reconciler.OutcomeReferenced: 0,
		reconciler.OutcomeMerged:     1,
		reconciler.OutcomeCreated:    2,
	}
	for i := range r.Authors {
		if r.Authors[i].Key != res.Key {
			continue
		}
		if rank[res.Outcome] > rank[r.Authors[i].Outcome] {
			r.Authors[i].Outcome = res.Outcome
		}
		r.Authors[i].Changed = appendUnique(r.Authors[i].Changed, res.Changed...)
		return
	}
	r.Authors = append(r.Authors, AuthorChange{Key: res.Key, Outcome: res.Outcome, Changed: res.Changed})
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
