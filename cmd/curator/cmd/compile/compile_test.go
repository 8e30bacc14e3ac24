package compile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/internal/cmd/emoji"
	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/schema"
)

const dataset = `{
  "title": "GameMaker Libraries",
  "description": "Community libraries",
  "authors": {"jujuadams": {"name": "Juju Adams", "github": "jujuadams"}},
  "libraries": [{"title": "Scribble", "url": "https://github.com/jujuadams/scribble", "authors": ["jujuadams"]}]
}
`

func newMock(t *testing.T, readme bool) *application.Mock {
	t.Helper()
	dir := t.TempDir()
	paths := application.PathsIn(dir)
	if readme {
		paths.Readme = filepath.Join(dir, "README.md")
	}
	require.NoError(t, os.WriteFile(paths.Schema, schema.DefaultDocument(), 0o644))
	require.NoError(t, os.WriteFile(paths.Tags, schema.DefaultTags(), 0o644))
	require.NoError(t, os.WriteFile(paths.Dataset, []byte(dataset), 0o644))
	return &application.Mock{PathsFunc: func() application.Paths { return paths }}
}

func TestExecute(t *testing.T) {
	app := newMock(t, false)
	var out bytes.Buffer

	require.NoError(t, Execute(context.Background(), app, false, &out))

	types, err := os.ReadFile(app.Paths().Types)
	require.NoError(t, err)
	assert.Contains(t, string(types), "export interface")

	tmpl, err := os.ReadFile(app.Paths().IssueTemplate)
	require.NoError(t, err)
	assert.Contains(t, string(tmpl), constants.SubmissionLabel)
	assert.Contains(t, out.String(), emoji.Success+" "+app.Paths().IssueTemplate)

	out.Reset()
	require.NoError(t, Execute(context.Background(), app, false, &out))
	assert.Contains(t, out.String(), emoji.Unchanged+" "+app.Paths().IssueTemplate)
}

func TestExecuteWithReadme(t *testing.T) {
	app := newMock(t, true)

	require.NoError(t, Execute(context.Background(), app, false, &bytes.Buffer{}))

	readme, err := os.ReadFile(app.Paths().Readme)
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# GameMaker Libraries")
	assert.Contains(t, string(readme), "Scribble")
}

func TestExecuteMissingSchema(t *testing.T) {
	app := newMock(t, false)
	require.NoError(t, os.Remove(app.Paths().Schema))

	assert.Error(t, Execute(context.Background(), app, false, &bytes.Buffer{}))
}
