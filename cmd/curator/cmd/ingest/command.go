package ingest

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/curator/cmd/application"
)

// NewCommand creates the ingest command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "ingest [file]",
		GroupID: "core",
		Short:   "Add submitted libraries and authors to the dataset",
		Args:    cobra.MaximumNArgs(1),
		Long: `Ingest reads a submission and merges it into the dataset.

The submission is free text holding one or more ` + "```yaml" + ` fenced blocks,
read from a file, from stdin, or from the issue body of a GitHub event
payload (--event). Each block is classified as a library or an author.
Authors are matched against the registry and merged or added, then the
result is validated against the schema before the dataset is written.

On failure nothing is written and a comment for the submitter is printed
to stdout or to --comment-out.`,
		Example: `  curator ingest submission.md                  # Ingest a file
  cat submission.md | curator ingest            # Ingest from stdin
  curator ingest --event "$GITHUB_EVENT_PATH"   # Ingest an issue event
  curator ingest submission.md --dry-run        # Validate without writing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return Execute(cmd.Context(), app, flags, path, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags = addIngestFlags(cmd)

	return cmd
}
