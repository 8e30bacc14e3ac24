package library

import (
	"slices"
	"strings"
)

// AuthorKey is a stable identifier for a reusable entry in the author registry.
type AuthorKey string

// String returns the string representation of an AuthorKey.
func (k AuthorKey) String() string {
	return string(k)
}

// Author is a person or organization credited on one or more listings.
type Author struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Website      string   `json:"website,omitempty" yaml:"website,omitempty"`
	Twitter      string   `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	GitHub       string   `json:"github,omitempty" yaml:"github,omitempty"`
	Discord      string   `json:"discord,omitempty" yaml:"discord,omitempty"`
	Affiliations []string `json:"affiliations,omitzero" yaml:"affiliations,omitempty"`
}

// Author field names as they appear in the schema.
const (
	FieldName         = "name"
	FieldWebsite      = "website"
	FieldTwitter      = "twitter"
	FieldGitHub       = "github"
	FieldDiscord      = "discord"
	FieldAffiliations = "affiliations"
)

// ScalarFields lists the single-valued author fields in schema order.
// These are the fields that identify an author during reconciliation.
var ScalarFields = []string{FieldName, FieldWebsite, FieldTwitter, FieldGitHub, FieldDiscord}

// Field returns the value of a scalar field by its schema name.
func (a *Author) Field(name string) string {
	switch name {
	case FieldName:
		return a.Name
	case FieldWebsite:
		return a.Website
	case FieldTwitter:
		return a.Twitter
	case FieldGitHub:
		return a.GitHub
	case FieldDiscord:
		return a.Discord
	}
	return ""
}

// SetField sets a scalar field by its schema name. Unknown names are ignored.
func (a *Author) SetField(name, value string) {
	switch name {
	case FieldName:
		a.Name = value
	case FieldWebsite:
		a.Website = value
	case FieldTwitter:
		a.Twitter = value
	case FieldGitHub:
		a.GitHub = value
	case FieldDiscord:
		a.Discord = value
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every
// string and blank affiliations dropped.
func (a Author) Trimmed() Author {
	out := Author{}
	for _, f := range ScalarFields {
		out.SetField(f, strings.TrimSpace(a.Field(f)))
	}
	for _, aff := range a.Affiliations {
		if aff = strings.TrimSpace(aff); aff != "" {
			out.Affiliations = append(out.Affiliations, aff)
		}
	}
	return out
}

// IsEmpty reports whether no field carries a non-blank value.
func (a *Author) IsEmpty() bool {
	t := a.Trimmed()
	for _, f := range ScalarFields {
		if t.Field(f) != "" {
			return false
		}
	}
	return len(t.Affiliations) == 0
}

// Populated returns the names of the scalar fields that carry a non-blank value.
func (a *Author) Populated() []string {
	var fields []string
	for _, f := range ScalarFields {
		if strings.TrimSpace(a.Field(f)) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// Clone returns a deep copy of the author.
func (a *Author) Clone() *Author {
	if a == nil {
		return nil
	}
	c := *a
	c.Affiliations = slices.Clone(a.Affiliations)
	return &c
}

// Describe renders the populated fields for log lines and error messages.
func (a *Author) Describe() string {
	var parts []string
	for _, f := range a.Populated() {
		parts = append(parts, f+"="+strings.TrimSpace(a.Field(f)))
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}
