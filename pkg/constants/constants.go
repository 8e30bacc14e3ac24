// Package constants provides shared constants used throughout the curator codebase.
// This includes file permissions, default file locations, and the submission
// conventions that must stay consistent between the issue template and ingestion.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default file locations, relative to the data directory.
const (
	// DefaultDataDir is the directory holding the dataset, schema and tags.
	DefaultDataDir = "."

	// DefaultDatasetFile is the canonical dataset document.
	DefaultDatasetFile = "libraries.json"

	// DefaultSchemaFile is the JSON Schema every dataset must satisfy.
	DefaultSchemaFile = "libraries-schema.json"

	// DefaultTagsFile is the newline-delimited tag vocabulary.
	DefaultTagsFile = "tags.txt"

	// DefaultTypesFile is the generated TypeScript description of the schema.
	DefaultTypesFile = "libraries-schema.d.ts"

	// DefaultIssueTemplateFile is the generated submission issue template.
	DefaultIssueTemplateFile = ".github/ISSUE_TEMPLATE/library.md"
)

// JSON formatting
const (
	// JSONIndent is the indentation used for every persisted JSON document.
	JSONIndent = "  "

	// JSONWidth is the line width under which short arrays stay on one line.
	JSONWidth = 80
)

// Submission conventions
const (
	// SubmissionLabel marks issues that carry resource submissions.
	SubmissionLabel = "resource :recycle:"

	// FencedBlockLanguage is the info string of fenced blocks that carry data.
	FencedBlockLanguage = "yaml"

	// FailureCommentPrefix opens every comment relayed back to a submitter on failure.
	FailureCommentPrefix = "🤖 Something went wrong!"
)

// Author key limits, mirrored by the authorKey definition in the schema.
const (
	// MinAuthorKeyLength is the shortest allowed author key.
	MinAuthorKeyLength = 2

	// MaxAuthorKeyLength is the longest allowed author key.
	MaxAuthorKeyLength = 64

	// FallbackAuthorKey is used when a name yields no usable key characters.
	FallbackAuthorKey = "author"
)

// Environment
const (
	// EnvPrefix namespaces environment variables read by the CLI.
	EnvPrefix = "CURATOR"
)
