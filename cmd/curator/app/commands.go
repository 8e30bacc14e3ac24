package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/curator/cmd/curator/cmd/compile"
	"github.com/agentstation/curator/cmd/curator/cmd/ingest"
	"github.com/agentstation/curator/cmd/curator/cmd/scaffold"
	"github.com/agentstation/curator/cmd/curator/cmd/tags"
	"github.com/agentstation/curator/cmd/curator/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(ingest.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(tags.NewCommand(a))
	rootCmd.AddCommand(compile.NewCommand(a))
	rootCmd.AddCommand(scaffold.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("curator %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
