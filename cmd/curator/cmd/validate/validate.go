package validate

import (
	"context"
	"fmt"
	"io"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/internal/cmd/emoji"
	"github.com/agentstation/curator/internal/cmd/output"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/logging"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/validator"
)

// Result is the machine-readable outcome of the validate command.
type Result struct {
	Dataset    string             `json:"dataset" yaml:"dataset"`
	Valid      bool               `json:"valid" yaml:"valid"`
	Libraries  int                `json:"libraries" yaml:"libraries"`
	Authors    int                `json:"authors" yaml:"authors"`
	Violations []errors.Violation `json:"violations" yaml:"violations"`
}

// Execute validates the configured dataset. When sync is set the tag list
// is synced into the schema first, regenerating the types file on change.
func Execute(ctx context.Context, app application.Application, sync bool, w io.Writer) error {
	ctx = logging.WithOperation(ctx, "validate")
	logger := logging.FromContext(ctx)
	paths := app.Paths()

	ds, err := app.DatasetStore().Load(ctx)
	if err != nil {
		return err
	}

	var (
		snap  *schema.Schema
		vopts []validator.Option
	)
	if sync {
		snap, err = app.SchemaStore().SyncTags(ctx)
		vopts = append(vopts, validator.WithTypesPath(paths.Types))
	} else {
		snap, err = app.SchemaStore().Preview()
	}
	if err != nil {
		return err
	}

	v, err := validator.Compile(snap, vopts...)
	if err != nil {
		return err
	}
	res, err := app.DatasetStore().WithValidator(v).ValidateFile()
	if err != nil {
		return err
	}

	result := Result{
		Dataset:    paths.Dataset,
		Valid:      res.Valid(),
		Libraries:  len(ds.Libraries),
		Authors:    ds.Authors.Len(),
		Violations: res.Violations,
	}
	if result.Violations == nil {
		result.Violations = []errors.Violation{}
	}
	logger.Debug().Bool("valid", result.Valid).Int("violations", len(res.Violations)).Msg("Validated dataset")

	if err := display(app, w, result); err != nil {
		return err
	}
	return res.Err()
}

func display(app application.Application, w io.Writer, result Result) error {
	format := output.DetectFormat(app.OutputFormat())
	if format != output.FormatTable && format != output.FormatWide {
		return output.NewFormatter(format).Format(w, result)
	}

	if result.Valid {
		fmt.Fprintf(w, "%s %s is valid (%d libraries, %d authors)\n",
			emoji.Success, result.Dataset, result.Libraries, result.Authors)
		return nil
	}

	fmt.Fprintf(w, "%s %s has %d violation(s):\n", emoji.Error, result.Dataset, len(result.Violations))
	return output.NewFormatter(format).Format(w, output.ViolationsData(result.Violations, format == output.FormatWide))
}
