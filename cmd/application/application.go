// Package application provides the application interface for curator commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            pipeline, err := app.Pipeline(false)
//	            if err != nil {
//	                return err
//	            }
//	            // ... ingest a submission
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    PathsFunc: func() application.Paths {
//	        return application.PathsIn(t.TempDir())
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/ingest"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/store"
)

// Paths locates every file the commands read or write.
type Paths struct {
	Dataset       string `json:"dataset" yaml:"dataset"`
	Schema        string `json:"schema" yaml:"schema"`
	Tags          string `json:"tags" yaml:"tags"`
	Types         string `json:"types" yaml:"types"`
	IssueTemplate string `json:"issue_template" yaml:"issue_template"`
	// Readme is empty when README generation is disabled.
	Readme string `json:"readme,omitempty" yaml:"readme,omitempty"`
}

// PathsIn returns the default file layout rooted at dir.
func PathsIn(dir string) Paths {
	return Paths{
		Dataset:       filepath.Join(dir, constants.DefaultDatasetFile),
		Schema:        filepath.Join(dir, constants.DefaultSchemaFile),
		Tags:          filepath.Join(dir, constants.DefaultTagsFile),
		Types:         filepath.Join(dir, constants.DefaultTypesFile),
		IssueTemplate: filepath.Join(dir, constants.DefaultIssueTemplateFile),
	}
}

// Application provides the application interface that commands need.
// The App struct from cmd/curator/app implements this interface.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Application interface {
	// Paths returns the configured file locations.
	Paths() Paths

	// Label returns the issue label that marks submissions.
	Label() string

	// SchemaStore returns the schema and tag list store.
	SchemaStore() *schema.Store

	// DatasetStore returns the dataset store. Its validator is unset; the
	// caller binds one compiled from the current schema.
	DatasetStore() *store.Store

	// Pipeline builds an ingestion pipeline over the configured stores.
	Pipeline(dryRun bool) (*ingest.Pipeline, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
