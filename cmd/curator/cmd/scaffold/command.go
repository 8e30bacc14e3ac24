// Package scaffold provides the init command, which lays out a new data
// directory.
package scaffold

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/curator/cmd/application"
)

// NewCommand creates the init command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "init",
		GroupID: "management",
		Short:   "Create the schema, tag list and an empty dataset",
		Args:    cobra.NoArgs,
		Long: `Init writes the files a new directory needs: the shipped schema, the
shipped tag list, the generated types and an empty dataset. Existing
files are kept unless --force is given.`,
		Example: `  curator init
  curator init -C data --title "My Libraries"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.Title, "title", DefaultTitle, "dataset title")
	cmd.Flags().StringVar(&flags.Description, "description", DefaultDescription, "dataset description")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "overwrite existing files")

	return cmd
}
