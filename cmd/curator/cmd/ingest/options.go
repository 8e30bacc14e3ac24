// Package ingest provides the ingest command implementation.
package ingest

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/curator/internal/event"
)

// Flags holds the ingest command flags.
type Flags struct {
	EventPath  string
	EventName  string
	CommentOut string
	DryRun     bool
}

// addIngestFlags registers the ingest flags on cmd.
func addIngestFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	eventName := os.Getenv("GITHUB_EVENT_NAME")
	if eventName == "" {
		eventName = event.NameIssues
	}

	cmd.Flags().StringVar(&flags.EventPath, "event", "", "read the submission from a GitHub event payload file")
	cmd.Flags().StringVar(&flags.EventName, "event-name", eventName, "name of the GitHub event (defaults to $GITHUB_EVENT_NAME)")
	cmd.Flags().StringVar(&flags.CommentOut, "comment-out", "", "write the failure comment to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "validate the submission without writing any file")

	return flags
}
