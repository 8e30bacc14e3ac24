// Package docs compiles the human-facing documents derived from the schema
// and the dataset: the submission issue template and the README listing.
package docs

import (
	"context"

	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/logging"
	"github.com/agentstation/curator/pkg/schema"
)

// Generator handles documentation generation
type Generator struct {
	issueTemplatePath string
	readmePath        string
	label             string
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithIssueTemplatePath sets where the issue template is written
func WithIssueTemplatePath(path string) Option {
	return func(g *Generator) {
		g.issueTemplatePath = path
	}
}

// WithReadmePath enables README generation at path
func WithReadmePath(path string) Option {
	return func(g *Generator) {
		g.readmePath = path
	}
}

// WithLabel sets the submission label put on new issues
func WithLabel(label string) Option {
	return func(g *Generator) {
		g.label = label
	}
}

// New creates a new documentation generator
func New(opts ...Option) *Generator {
	g := &Generator{
		issueTemplatePath: constants.DefaultIssueTemplateFile,
		label:             constants.SubmissionLabel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes the issue template and, when configured and ds is not
// nil, the README. Files whose content is unchanged are not rewritten. It
// returns the paths that were written.
func (g *Generator) Generate(ctx context.Context, s *schema.Schema, ds *library.Dataset) ([]string, error) {
	logger := logging.FromContext(ctx)
	var written []string

	tmpl, err := IssueTemplate(s, g.label)
	if err != nil {
		return nil, err
	}
	changed, err := fileutil.WriteIfChanged(g.issueTemplatePath, []byte(tmpl))
	if err != nil {
		return nil, errors.WrapResource("save", "issue template", g.issueTemplatePath, err)
	}
	if changed {
		written = append(written, g.issueTemplatePath)
	}

	if g.readmePath != "" && ds != nil {
		readme, err := Readme(ds)
		if err != nil {
			return nil, err
		}
		changed, err := fileutil.WriteIfChanged(g.readmePath, []byte(readme))
		if err != nil {
			return nil, errors.WrapResource("save", "readme", g.readmePath, err)
		}
		if changed {
			written = append(written, g.readmePath)
		}
	}

	logger.Info().Strs("written", written).Msg("Documentation compiled")
	return written, nil
}
