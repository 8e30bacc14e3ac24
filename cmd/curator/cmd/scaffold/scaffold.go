package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/internal/cmd/emoji"
	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/logging"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/store"
	"github.com/agentstation/curator/pkg/validator"
)

// Defaults for a new dataset.
const (
	DefaultTitle       = "GameMaker Libraries"
	DefaultDescription = "Community libraries, tools and resources for GameMaker."
)

// Flags holds the init command flags.
type Flags struct {
	Title       string
	Description string
	Force       bool
}

// Execute writes the starter files. A file that already exists is left
// alone unless flags.Force is set.
func Execute(ctx context.Context, app application.Application, flags *Flags, w io.Writer) error {
	ctx = logging.WithOperation(ctx, "init")
	logger := logging.FromContext(ctx)
	paths := app.Paths()

	dataset, err := store.Encode(library.NewDataset(flags.Title, flags.Description))
	if err != nil {
		return err
	}

	files := []struct {
		path string
		data []byte
	}{
		{paths.Schema, schema.DefaultDocument()},
		{paths.Tags, schema.DefaultTags()},
		{paths.Dataset, dataset},
	}
	for _, f := range files {
		if !flags.Force && exists(f.path) {
			fmt.Fprintf(w, "%s %s exists, kept\n", emoji.Unchanged, f.path)
			continue
		}
		if err := fileutil.WriteAtomic(f.path, f.data); err != nil {
			return err
		}
		logger.Debug().Str("path", f.path).Msg("Wrote starter file")
		fmt.Fprintf(w, "%s %s\n", emoji.Success, f.path)
	}

	snap, err := app.SchemaStore().SyncTags(ctx)
	if err != nil {
		return err
	}
	v, err := validator.Compile(snap, validator.WithTypesPath(paths.Types))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", emoji.Success, paths.Types)

	res, err := app.DatasetStore().WithValidator(v).ValidateFile()
	if err != nil {
		return err
	}
	if !res.Valid() {
		return errors.WrapResource("init", "dataset", paths.Dataset, res.Err())
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
