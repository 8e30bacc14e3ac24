package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/internal/cmd/emoji"
	"github.com/agentstation/curator/internal/cmd/output"
	"github.com/agentstation/curator/internal/event"
	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/ingest"
	"github.com/agentstation/curator/pkg/logging"
)

// Execute ingests one submission. path names the submission file; an empty
// path or "-" reads stdin unless flags select an event payload.
func Execute(ctx context.Context, app application.Application, flags *Flags, path string, stdin io.Reader, stdout io.Writer) error {
	ctx, text, err := readSubmission(ctx, app, flags, path, stdin)
	if err != nil {
		return relay(flags, stdout, err)
	}
	logger := logging.FromContext(ctx)

	pipeline, err := app.Pipeline(flags.DryRun)
	if err != nil {
		return err
	}

	report, err := pipeline.Ingest(ctx, text)
	if err != nil {
		return relay(flags, stdout, err)
	}

	logger.Info().Str("state", report.State.String()).Bool("dry_run", report.DryRun).Msg("Submission accepted")
	return printReport(app, stdout, report)
}

// readSubmission returns the submission text from the event payload, the
// named file or stdin, and a context whose logger names the submission.
func readSubmission(ctx context.Context, app application.Application, flags *Flags, path string, stdin io.Reader) (context.Context, string, error) {
	if flags.EventPath != "" {
		sub, err := event.Load(flags.EventName, flags.EventPath)
		if err != nil {
			return ctx, "", err
		}
		ctx = logging.WithSubmission(ctx, fmt.Sprintf("issue-%d", sub.Issue.Number))
		if err := sub.Check(app.Label()); err != nil {
			return ctx, "", err
		}
		logging.FromContext(ctx).Debug().
			Str("action", sub.Action).
			Msg("Read submission from issue event")
		return ctx, sub.Issue.Body, nil
	}

	if path != "" && path != "-" {
		ctx = logging.WithSubmission(ctx, path)
		data, err := os.ReadFile(path)
		if err != nil {
			return ctx, "", errors.WrapIO("read", path, err)
		}
		return ctx, string(data), nil
	}

	ctx = logging.WithSubmission(ctx, "stdin")
	data, err := io.ReadAll(stdin)
	if err != nil {
		return ctx, "", errors.WrapIO("read", "stdin", err)
	}
	return ctx, string(data), nil
}

// relay renders the failure comment for the submitter and returns err.
func relay(flags *Flags, stdout io.Writer, err error) error {
	comment := event.FailureComment(err)
	if flags.CommentOut != "" {
		if _, werr := fileutil.WriteIfChanged(flags.CommentOut, []byte(comment+"\n")); werr != nil {
			return werr
		}
		return err
	}
	_, _ = fmt.Fprintln(stdout, comment)
	return err
}

func printReport(app application.Application, w io.Writer, report *ingest.Report) error {
	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)

	switch format {
	case output.FormatTable, output.FormatWide:
		fmt.Fprintf(w, "%s %s\n", emoji.Success, report.String())
		return formatter.Format(w, output.ReportData(report, format == output.FormatWide))
	default:
		return formatter.Format(w, report)
	}
}
