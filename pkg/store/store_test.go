package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/validator"
)

const fixture = `{
  "title": "GameMaker Libraries",
  "description": "Community libraries",
  "authors": {
    "zed": {"name": "Zed", "github": "zed"},
    "janedoe": {"name": "Jane Doe", "github": "janedoe"}
  },
  "libraries": [
    {
      "title": "Scribble",
      "url": "https://github.com/jujuadams/scribble",
      "tags": ["text"],
      "authors": ["janedoe", {"name": "Inline Person"}],
      "compatibility": ["Studio 2.3"]
    }
  ]
}
`

func newStore(t *testing.T, content string) *Store {
	t.Helper()
	v, err := validator.Compile(schema.Default())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "libraries.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return New(path, v)
}

func TestLoad(t *testing.T) {
	s := newStore(t, fixture)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GameMaker Libraries", ds.Title)
	assert.Equal(t, []library.AuthorKey{"zed", "janedoe"}, ds.Authors.Keys(), "document order kept")
	require.Len(t, ds.Libraries, 1)
	require.Len(t, ds.Libraries[0].Authors, 2)
	assert.True(t, ds.Libraries[0].Authors[0].IsKey())
	assert.Equal(t, "Inline Person", ds.Libraries[0].Authors[1].Inline.Name)
}

func TestLoadReferentialIntegrity(t *testing.T) {
	tests := []struct {
		name    string
		authors string
		refs    string
		wantErr bool
	}{
		{name: "all present", authors: `{"a1":{"name":"A"}}`, refs: `["a1"]`},
		{name: "inline only", authors: `{}`, refs: `[{"name":"B"}]`},
		{name: "no authors", authors: `{}`, refs: `[]`},
		{name: "missing key", authors: `{"a1":{"name":"A"}}`, refs: `["a1","ghost"]`, wantErr: true},
		{name: "empty registry", authors: `{}`, refs: `["a1"]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"title":"t","description":"d","authors":` + tt.authors +
				`,"libraries":[{"title":"Lib","url":"https://example.com","authors":` + tt.refs + `}]}`
			_, err := newStore(t, doc).Load(context.Background())
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var re *errors.ReferentialError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, "Lib", re.Listing)
			assert.True(t, errors.Is(err, errors.ErrAuthorKeyNotFound))
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := newStore(t, "").Load(context.Background())
	assert.Error(t, err)

	_, err = newStore(t, `{"title":`).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsParse(err))

	_, err = newStore(t, `{"authors":{"a":{"name":"A"},"a":{"name":"B"}}}`).Load(context.Background())
	assert.Error(t, err, "duplicate registry keys are rejected")
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := newStore(t, fixture)
	ctx := context.Background()

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, ds.Authors.Add("new-person", &library.Author{Name: "New Person", Affiliations: []string{"Guild"}}))
	ds.Libraries = append(ds.Libraries, library.Library{
		Title:   "Input",
		URL:     "https://github.com/jujuadams/input",
		Authors: []library.AuthorRef{library.KeyRef("new-person")},
	})

	require.NoError(t, s.ValidateThenSave(ctx, ds))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(ds, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveThenLoadKeepsEmptyCollections(t *testing.T) {
	s := newStore(t, `{
  "title": "GameMaker Libraries",
  "description": "",
  "authors": {"zed": {"name": "Zed", "affiliations": []}},
  "libraries": [
    {"title": "Bare", "url": "https://example.com/bare", "tags": [], "authors": [], "compatibility": []},
    {"title": "Absent", "url": "https://example.com/absent"}
  ]
}`)
	ctx := context.Background()

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.ValidateThenSave(ctx, ds))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(ds, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.NotNil(t, loaded.Libraries[0].Tags)
	assert.NotNil(t, loaded.Libraries[0].Authors)
	assert.NotNil(t, loaded.Libraries[0].Compatibility)
	assert.Nil(t, loaded.Libraries[1].Tags)

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tags": []`)
	assert.Contains(t, string(raw), `"affiliations": []`)
	assert.NotContains(t, string(raw[strings.Index(string(raw), `"Absent"`):]), `"tags"`)
}

func TestSaveKeepsQueryStrings(t *testing.T) {
	s := newStore(t, `{
  "title": "GameMaker Libraries",
  "description": "Tools & more",
  "authors": {"zed": {"name": "Zed", "website": "https://zed.dev/?ref=a&b=c"}},
  "libraries": [
    {"title": "Query", "url": "https://example.com/?a=1&b=2", "authors": [{"name": "Inline", "website": "https://x.dev/?p=1&q=2"}]}
  ]
}`)
	ctx := context.Background()

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.ValidateThenSave(ctx, ds))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	out := string(raw)
	assert.NotContains(t, out, `\u0026`)
	assert.Contains(t, out, `"https://example.com/?a=1&b=2"`)
	assert.Contains(t, out, `"https://zed.dev/?ref=a&b=c"`)
	assert.Contains(t, out, `"https://x.dev/?p=1&q=2"`)
	assert.Contains(t, out, `"Tools & more"`)
}

func TestSaveIsDeterministic(t *testing.T) {
	s := newStore(t, fixture)
	ctx := context.Background()

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.ValidateThenSave(ctx, ds))
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	ds, err = s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.ValidateThenSave(ctx, ds))
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.True(t, strings.HasPrefix(string(first), "{\n  \"title\": \"GameMaker Libraries\",\n"))
	assert.True(t, strings.HasSuffix(string(first), "}\n"))
	assert.Less(t, strings.Index(string(first), `"zed"`), strings.Index(string(first), `"janedoe"`))
}

func TestInvalidDatasetIsNotSaved(t *testing.T) {
	s := newStore(t, fixture)
	ctx := context.Background()

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	ds.Libraries[0].Tags = []string{"bogus"}
	ds.Libraries[0].Compatibility = []string{"Studio 9"}

	err = s.ValidateThenSave(ctx, ds)
	require.Error(t, err)
	var sve *errors.SchemaValidationError
	require.True(t, errors.As(err, &sve))
	assert.GreaterOrEqual(t, len(sve.Violations), 2)

	content, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, fixture, string(content), "file untouched")
}

func TestSaveWithoutValidator(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "libraries.json"), nil)
	err := s.ValidateThenSave(context.Background(), library.NewDataset("t", "d"))
	require.Error(t, err)
	var ce *errors.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestValidateFile(t *testing.T) {
	s := newStore(t, `{"title":"t","description":"d","authors":{},"libraries":[],"stars":1}`)
	res, err := s.ValidateFile()
	require.NoError(t, err)
	assert.False(t, res.Valid())

	s = newStore(t, fixture)
	res, err = s.ValidateFile()
	require.NoError(t, err)
	assert.True(t, res.Valid(), res.Messages())
}

func TestUpsert(t *testing.T) {
	ds := library.NewDataset("t", "d")

	outcome, idx := Upsert(ds, library.Library{
		Title:   "Scribble",
		URL:     "https://example.com/scribble",
		Tags:    []string{"text"},
		Authors: []library.AuthorRef{library.KeyRef("a")},
	})
	assert.Equal(t, UpsertInserted, outcome)
	assert.Equal(t, 0, idx)

	outcome, idx = Upsert(ds, library.Library{
		Title:       " scribble ",
		URL:         "HTTPS://EXAMPLE.COM/scribble",
		Description: "Text renderer",
		Authors:     []library.AuthorRef{library.KeyRef("b"), library.KeyRef("a")},
	})
	assert.Equal(t, UpsertMerged, outcome)
	assert.Equal(t, 0, idx)
	require.Len(t, ds.Libraries, 1)

	got := ds.Libraries[0]
	assert.Equal(t, "Text renderer", got.Description)
	assert.Equal(t, []string{"text"}, got.Tags, "empty tags do not replace")
	assert.Equal(t, []library.AuthorKey{"a", "b"}, got.AuthorKeys())

	Upsert(ds, library.Library{Title: "Scribble", URL: "https://example.com/scribble", Tags: []string{"ui"}})
	assert.Equal(t, []string{"ui"}, ds.Libraries[0].Tags)

	outcome, idx = Upsert(ds, library.Library{Title: "Scribble", URL: "https://example.com/other"})
	assert.Equal(t, UpsertInserted, outcome)
	assert.Equal(t, 1, idx)
}
