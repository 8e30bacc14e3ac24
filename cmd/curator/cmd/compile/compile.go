package compile

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/internal/cmd/emoji"
	"github.com/agentstation/curator/internal/tools/docs"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/logging"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/validator"
)

// Execute writes the types file, the issue template and, when configured,
// the README.
func Execute(ctx context.Context, app application.Application, sync bool, w io.Writer) error {
	ctx = logging.WithOperation(ctx, "compile")
	paths := app.Paths()

	var (
		snap *schema.Schema
		err  error
	)
	if sync {
		snap, err = app.SchemaStore().SyncTags(ctx)
	} else {
		snap, err = app.SchemaStore().Load()
	}
	if err != nil {
		return err
	}

	if _, err := validator.Compile(snap, validator.WithTypesPath(paths.Types)); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", emoji.Success, paths.Types)

	opts := []docs.Option{
		docs.WithIssueTemplatePath(paths.IssueTemplate),
		docs.WithLabel(app.Label()),
	}
	var ds *library.Dataset
	if paths.Readme != "" {
		ds, err = app.DatasetStore().Load(ctx)
		if err != nil {
			return err
		}
		opts = append(opts, docs.WithReadmePath(paths.Readme))
	}

	written, err := docs.New(opts...).Generate(ctx, snap, ds)
	if err != nil {
		return err
	}

	targets := []string{paths.IssueTemplate}
	if paths.Readme != "" {
		targets = append(targets, paths.Readme)
	}
	for _, target := range targets {
		mark := emoji.Unchanged
		if slices.Contains(written, target) {
			mark = emoji.Success
		}
		fmt.Fprintf(w, "%s %s\n", mark, target)
	}
	return nil
}
