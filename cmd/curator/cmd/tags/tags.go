package tags

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/internal/cmd/emoji"
	"github.com/agentstation/curator/internal/cmd/output"
	"github.com/agentstation/curator/pkg/logging"
	"github.com/agentstation/curator/pkg/validator"
)

// Sync canonicalizes the tag list, writes it into the schema and
// regenerates the types file.
func Sync(ctx context.Context, app application.Application, w io.Writer) error {
	ctx = logging.WithOperation(ctx, "tags-sync")
	schemas := app.SchemaStore()

	before, err := schemas.Load()
	if err != nil {
		return err
	}
	after, err := schemas.SyncTags(ctx)
	if err != nil {
		return err
	}
	if _, err := validator.Compile(after, validator.WithTypesPath(app.Paths().Types)); err != nil {
		return err
	}

	if slices.Equal(before.Tags(), after.Tags()) {
		fmt.Fprintf(w, "%s %d tags already in sync\n", emoji.Unchanged, len(after.Tags()))
		return nil
	}
	fmt.Fprintf(w, "%s Synced %d tags into %s\n", emoji.Success, len(after.Tags()), schemas.SchemaPath())
	return nil
}

// List prints the tags the schema would accept after a sync.
func List(app application.Application, w io.Writer) error {
	snap, err := app.SchemaStore().Preview()
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	if format != output.FormatTable && format != output.FormatWide {
		return output.NewFormatter(format).Format(w, snap.Tags())
	}

	rows := make([][]string, 0, len(snap.Tags()))
	for _, tag := range snap.Tags() {
		rows = append(rows, []string{tag})
	}
	return output.NewFormatter(format).Format(w, output.Data{Headers: []string{"Tag"}, Rows: rows})
}
