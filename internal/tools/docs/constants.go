package docs

// Common display constants used across documentation.
const (
	EmDash = "—"

	// Field importance markers used in the issue template.
	ImportanceRequired    Importance = "required"
	ImportanceRecommended Importance = "recommended"
	ImportanceOptional    Importance = "optional"
)
