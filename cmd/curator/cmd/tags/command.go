// Package tags provides the tags command implementation.
package tags

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/curator/cmd/application"
)

// NewCommand creates the tags command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		GroupID: "management",
		Short:   "Manage the tag vocabulary",
		Long: `Manage the tag vocabulary.

The tag list file is the source of truth for the tags a library may carry.
It is kept sorted and deduplicated, and its contents are copied into the
schema's tag enumeration by the sync subcommand.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewSyncCommand(app))
	cmd.AddCommand(NewListCommand(app))

	return cmd
}

// NewSyncCommand creates the tags sync command.
func NewSyncCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy the tag list into the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Sync(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// NewListCommand creates the tags list command.
func NewListCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the tags the schema accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return List(app, cmd.OutOrStdout())
		},
	}
}
