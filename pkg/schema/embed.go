package schema

import (
	_ "embed"
	"slices"
)

//go:embed libraries-schema.json
var defaultSchema []byte

//go:embed tags.txt
var defaultTags []byte

// DefaultDocument returns the schema document shipped with curator. It is
// used to bootstrap a new data directory and as a fixture in tests.
func DefaultDocument() []byte {
	return slices.Clone(defaultSchema)
}

// DefaultTags returns the canonical tag list shipped with curator.
func DefaultTags() []byte {
	return slices.Clone(defaultTags)
}

// Default parses the shipped schema document.
func Default() *Schema {
	s, err := Parse(defaultSchema)
	if err != nil {
		panic("schema: shipped document is invalid: " + err.Error())
	}
	return s
}
