// Package validate provides the validate command implementation.
package validate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/curator/cmd/application"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var noSync bool

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Check the dataset against the schema",
		Args:    cobra.NoArgs,
		Long: `Validate checks the dataset as it is stored on disk.

The command:
  - Loads the dataset and checks every author key a listing references
  - Syncs the tag list into the schema (skipped with --no-sync)
  - Validates the dataset file against the schema and lists every violation

It exits non-zero when the dataset is invalid.`,
		Example: `  curator validate               # Validate the dataset
  curator validate --no-sync     # Validate without touching the schema
  curator validate -o json       # Machine-readable result`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, !noSync, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&noSync, "no-sync", false, "validate against the tag list without rewriting the schema")

	return cmd
}
