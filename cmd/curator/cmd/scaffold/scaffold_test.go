package scaffold

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/store"
)

func newMock(t *testing.T) *application.Mock {
	t.Helper()
	paths := application.PathsIn(t.TempDir())
	return &application.Mock{PathsFunc: func() application.Paths { return paths }}
}

func TestExecute(t *testing.T) {
	app := newMock(t)
	var out bytes.Buffer

	err := Execute(context.Background(), app, &Flags{Title: "Libraries", Description: "All of them"}, &out)
	require.NoError(t, err)

	schemaBytes, err := os.ReadFile(app.Paths().Schema)
	require.NoError(t, err)
	assert.Equal(t, schema.DefaultDocument(), schemaBytes)
	assert.FileExists(t, app.Paths().Types)

	ds, err := store.New(app.Paths().Dataset, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Libraries", ds.Title)
	assert.Equal(t, "All of them", ds.Description)
	assert.Empty(t, ds.Libraries)
	assert.Equal(t, 0, ds.Authors.Len())
}

func TestExecuteKeepsExistingFiles(t *testing.T) {
	app := newMock(t)
	require.NoError(t, Execute(context.Background(), app, &Flags{Title: "First"}, &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, Execute(context.Background(), app, &Flags{Title: "Second"}, &out))
	assert.Contains(t, out.String(), "exists, kept")

	ds, err := store.New(app.Paths().Dataset, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "First", ds.Title)

	require.NoError(t, Execute(context.Background(), app, &Flags{Title: "Third", Force: true}, &bytes.Buffer{}))
	ds, err = store.New(app.Paths().Dataset, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Third", ds.Title)
}
