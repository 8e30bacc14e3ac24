// Package compile provides the compile command implementation.
package compile

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/curator/cmd/application"
)

// NewCommand creates the compile command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var sync bool

	cmd := &cobra.Command{
		Use:     "compile",
		GroupID: "management",
		Short:   "Generate the artifacts derived from the schema",
		Args:    cobra.NoArgs,
		Long: `Compile regenerates every file derived from the schema:

  - TypeScript declarations for the dataset
  - The submission issue template, with an instruction for every field
  - The README listing, when a readme path is configured

Files whose content would not change are left untouched.`,
		Example: `  curator compile          # Regenerate from the current schema
  curator compile --sync   # Sync the tag list into the schema first`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, sync, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&sync, "sync", false, "sync the tag list into the schema before compiling")

	return cmd
}
