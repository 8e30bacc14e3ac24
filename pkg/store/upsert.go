package store

import (
	"slices"
	"strings"

	"github.com/agentstation/curator/pkg/library"
)

// UpsertOutcome reports whether Upsert added or updated a listing.
type UpsertOutcome string

// String returns the string representation of an upsert outcome.
func (o UpsertOutcome) String() string {
	return string(o)
}

const (
	// UpsertInserted means no listing shared the identity and one was appended.
	UpsertInserted UpsertOutcome = "inserted"
	// UpsertMerged means an existing listing with the same identity was updated.
	UpsertMerged UpsertOutcome = "merged"
)

// Upsert adds listing to ds, or merges it into the listing with the same
// (title, url) identity. It returns the outcome and the listing's index.
func Upsert(ds *library.Dataset, listing library.Library) (UpsertOutcome, int) {
	id := listing.Identity()
	for i := range ds.Libraries {
		if ds.Libraries[i].Identity() == id {
			mergeListing(&ds.Libraries[i], listing)
			return UpsertMerged, i
		}
	}
	ds.Libraries = append(ds.Libraries, listing)
	return UpsertInserted, len(ds.Libraries) - 1
}

// mergeListing overwrites populated scalars, replaces tags and
// compatibility when given, and unions the authors.
func mergeListing(dst *library.Library, src library.Library) {
	set := func(field *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*field = v
		}
	}
	set(&dst.Title, src.Title)
	set(&dst.Description, src.Description)
	set(&dst.URL, src.URL)
	set(&dst.GitHubURL, src.GitHubURL)

	if len(src.Tags) > 0 {
		dst.Tags = slices.Clone(src.Tags)
	}
	if len(src.Compatibility) > 0 {
		dst.Compatibility = slices.Clone(src.Compatibility)
	}

	for _, ref := range src.Authors {
		if !containsRef(dst.Authors, ref) {
			dst.Authors = append(dst.Authors, ref)
		}
	}
}

func containsRef(refs []library.AuthorRef, ref library.AuthorRef) bool {
	for _, r := range refs {
		if r.IsKey() != ref.IsKey() {
			continue
		}
		if r.IsKey() && r.Key == ref.Key {
			return true
		}
		if !r.IsKey() && r.Inline != nil && ref.Inline != nil && r.Inline.Describe() == ref.Inline.Describe() {
			return true
		}
	}
	return false
}
