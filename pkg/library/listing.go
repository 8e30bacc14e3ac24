package library

import (
	"strings"
)

// Library is a single resource listing.
type Library struct {
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	URL           string      `json:"url"`
	GitHubURL     string      `json:"githubUrl,omitempty"`
	Tags          []string    `json:"tags,omitzero"`
	Authors       []AuthorRef `json:"authors,omitzero"`
	Compatibility []string    `json:"compatibility,omitzero"`
}

// Identity is the (title, url) pair that identifies a listing across submissions.
type Identity struct {
	Title string
	URL   string
}

// Identity returns the normalized identity of the listing.
func (l *Library) Identity() Identity {
	return Identity{
		Title: strings.ToLower(strings.TrimSpace(l.Title)),
		URL:   strings.ToLower(strings.TrimSpace(l.URL)),
	}
}

// AuthorKeys returns every key reference in order, skipping inline authors.
func (l *Library) AuthorKeys() []AuthorKey {
	var keys []AuthorKey
	for _, ref := range l.Authors {
		if ref.IsKey() {
			keys = append(keys, ref.Key)
		}
	}
	return keys
}

// HasAuthorKey reports whether the listing already references key.
func (l *Library) HasAuthorKey(key AuthorKey) bool {
	for _, ref := range l.Authors {
		if ref.IsKey() && ref.Key == key {
			return true
		}
	}
	return false
}
