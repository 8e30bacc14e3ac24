package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/logging"
	"github.com/agentstation/curator/pkg/reconciler"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/store"
)

const dataset = `{
  "title": "GameMaker Libraries",
  "description": "Community libraries",
  "authors": {
    "janedoe": {"name": "Jane Doe", "github": "janedoe"}
  },
  "libraries": [
    {
      "title": "Scribble",
      "url": "https://github.com/jujuadams/scribble",
      "authors": ["janedoe"]
    }
  ]
}
`

type fixture struct {
	dir      string
	pipeline *Pipeline
	store    *store.Store
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(f.path(name))
	require.NoError(t, err)
	return string(b)
}

func (f *fixture) load(t *testing.T) *library.Dataset {
	t.Helper()
	ds, err := f.store.Load(context.Background())
	require.NoError(t, err)
	return ds
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "libraries-schema.json"), schema.DefaultDocument(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.txt"), schema.DefaultTags(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "libraries.json"), []byte(dataset), 0o644))

	st := store.New(filepath.Join(dir, "libraries.json"), nil)
	p, err := New(schema.NewStore(filepath.Join(dir, "libraries-schema.json"), filepath.Join(dir, "tags.txt")), st, opts...)
	require.NoError(t, err)
	return &fixture{dir: dir, pipeline: p, store: st}
}

func submission(blocks ...string) string {
	var sb strings.Builder
	sb.WriteString("### New resource\n\nThanks for submitting!\n\n")
	for _, b := range blocks {
		sb.WriteString("```yaml\n" + b + "\n```\n\nSome prose between blocks.\n\n")
	}
	return sb.String()
}

func requireFailedAt(t *testing.T, err error, state State) *Error {
	t.Helper()
	require.Error(t, err)
	var ie *Error
	require.True(t, errors.As(err, &ie), "got %T", err)
	assert.Equal(t, state, ie.State)
	return ie
}

func TestIngestLibraryAndAuthor(t *testing.T) {
	f := newFixture(t)

	report, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Input\nurl: https://github.com/jujuadams/input\ntags:\n  - ui\ncompatibility:\n  - Studio 2.3",
		"name: John Smith\ngithub: jsmith",
	))
	require.NoError(t, err)

	assert.Equal(t, StatePersisted, report.State)
	assert.Equal(t, []State{StateReceived, StateParsed, StateClassified, StateReconciled, StateValidated, StatePersisted}, report.Trail)
	assert.True(t, report.Succeeded())
	require.Len(t, report.Listings, 1)
	assert.Equal(t, store.UpsertInserted, report.Listings[0].Outcome)
	require.Len(t, report.Authors, 1)
	assert.Equal(t, reconciler.OutcomeCreated, report.Authors[0].Outcome)

	ds := f.load(t)
	require.Len(t, ds.Libraries, 2)
	assert.Equal(t, 2, ds.Authors.Len())
	input := ds.Libraries[1]
	assert.Equal(t, "Input", input.Title)
	assert.Equal(t, []library.AuthorKey{"john-smith"}, input.AuthorKeys())
	author, ok := ds.Authors.Get("john-smith")
	require.True(t, ok)
	assert.Equal(t, "jsmith", author.GitHub)
}

func TestIngestNoCodeBlocks(t *testing.T) {
	f := newFixture(t)
	before := f.read(t, "libraries.json")

	report, err := f.pipeline.Ingest(context.Background(), "I would like to add a library but forgot the form.")
	ie := requireFailedAt(t, err, StateParsed)
	assert.Equal(t, "No code blocks found", ie.Error())
	assert.True(t, errors.Is(err, errors.ErrNoCodeBlocks))
	assert.True(t, errors.IsParse(err))
	assert.Equal(t, StateFailed, report.State)
	assert.Equal(t, before, f.read(t, "libraries.json"))
}

func TestIngestUndecodableBlock(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Ingest(context.Background(), submission("title: Input", "name: [unclosed"))
	requireFailedAt(t, err, StateParsed)
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Block)
}

func TestIngestUnclassifiedBlock(t *testing.T) {
	f := newFixture(t)
	before := f.read(t, "libraries.json")

	_, err := f.pipeline.Ingest(context.Background(), submission("stars: 5\nforks: 2"))
	requireFailedAt(t, err, StateClassified)
	assert.True(t, errors.IsUnclassified(err))
	assert.Contains(t, err.Error(), "code block 1 is neither a library nor an author")
	assert.Equal(t, before, f.read(t, "libraries.json"))

	_, err = f.pipeline.Ingest(context.Background(), submission("- just\n- a list"))
	requireFailedAt(t, err, StateClassified)
}

func TestIngestSkipsEmptyTemplateSections(t *testing.T) {
	f := newFixture(t)

	report, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Input\nurl: https://github.com/jujuadams/input\ndescription: ''\nauthors:\n  - janedoe",
		"# fill this in if you are new\nname:\ngithub:\nwebsite: \"  \"",
	))
	require.NoError(t, err)
	require.Len(t, report.Blocks, 2)
	assert.Equal(t, BlockLibrary, report.Blocks[0].Kind)
	assert.Equal(t, BlockSkipped, report.Blocks[1].Kind)
	assert.Equal(t, 1, f.load(t).Authors.Len())
}

func TestIngestSkipsBlankBlock(t *testing.T) {
	f := newFixture(t)

	text := "Intro\n\n```yaml\n```\n\nMore\n\n```yaml\nname: Bob Smith\n```\n"
	report, err := f.pipeline.Ingest(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, report.Blocks, 2)
	assert.Equal(t, BlockSkipped, report.Blocks[0].Kind)
	assert.Equal(t, BlockAuthor, report.Blocks[1].Kind)
	assert.Equal(t, 2, f.load(t).Authors.Len())
}

func TestIngestOnlyEmptyBlocks(t *testing.T) {
	f := newFixture(t)
	_, err := f.pipeline.Ingest(context.Background(), submission("name:\ngithub:"))
	requireFailedAt(t, err, StateClassified)
}

func TestIngestMergesExistingAuthor(t *testing.T) {
	f := newFixture(t)

	report, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Input\nurl: https://github.com/jujuadams/input",
		"github: JaneDoe\nwebsite: jane.dev",
	))
	require.NoError(t, err)
	require.Len(t, report.Authors, 1)
	assert.Equal(t, reconciler.OutcomeMerged, report.Authors[0].Outcome)
	assert.Equal(t, library.AuthorKey("janedoe"), report.Authors[0].Key)

	ds := f.load(t)
	assert.Equal(t, 1, ds.Authors.Len())
	jane, _ := ds.Authors.Get("janedoe")
	assert.Equal(t, "jane.dev", jane.Website)
	assert.Equal(t, []library.AuthorKey{"janedoe"}, ds.Libraries[1].AuthorKeys())
}

func TestIngestInlineAuthorsBecomeKeys(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Input\nurl: https://github.com/jujuadams/input\nauthors:\n  - janedoe\n  - name: Zoë Ångström\n    twitter: zoe\n  - github: janedoe",
	))
	require.NoError(t, err)

	ds := f.load(t)
	assert.Equal(t, []library.AuthorKey{"janedoe", "zoe-angstrom"}, ds.Libraries[1].AuthorKeys())
	assert.Contains(t, f.read(t, "libraries.json"), `"authors": ["janedoe", "zoe-angstrom"]`)
}

func TestIngestMissingAuthorKey(t *testing.T) {
	f := newFixture(t)
	before := f.read(t, "libraries.json")

	_, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Input\nurl: https://github.com/jujuadams/input\nauthors:\n  - ghost",
	))
	requireFailedAt(t, err, StateReconciled)
	assert.True(t, errors.Is(err, errors.ErrAuthorKeyNotFound))
	assert.Contains(t, err.Error(), `referenced by "Input"`)
	assert.Equal(t, before, f.read(t, "libraries.json"))
}

func TestIngestAuthorWithoutName(t *testing.T) {
	f := newFixture(t)
	before := f.read(t, "libraries.json")

	_, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Input\nurl: https://github.com/jujuadams/input",
		"github: stranger",
	))
	requireFailedAt(t, err, StateReconciled)
	assert.True(t, errors.Is(err, errors.ErrAuthorMustHaveName))
	assert.Equal(t, before, f.read(t, "libraries.json"))
}

func TestIngestDryRun(t *testing.T) {
	f := newFixture(t, WithDryRun(true))
	before := f.read(t, "libraries.json")
	schemaBefore := f.read(t, "libraries-schema.json")

	report, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Input\nurl: https://github.com/jujuadams/input",
	))
	require.NoError(t, err)
	assert.Equal(t, StateValidated, report.State)
	assert.True(t, report.DryRun)
	assert.True(t, report.Succeeded())
	assert.Equal(t, before, f.read(t, "libraries.json"))
	assert.Equal(t, schemaBefore, f.read(t, "libraries-schema.json"))
}

func TestIngestStringifiesScalars(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Old Thing\nurl: https://example.com/old\ncompatibility:\n  - 8\n  - Studio",
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"8", "Studio"}, f.load(t).Libraries[1].Compatibility)
}

func TestIngestSyncsNewTags(t *testing.T) {
	f := newFixture(t, WithTypesPath(filepath.Join(t.TempDir(), "types.d.ts")))
	require.NoError(t, os.WriteFile(f.path("tags.txt"), append(schema.DefaultTags(), []byte("\naudio\n")...), 0o644))

	_, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Sound\nurl: https://example.com/sound\ntags:\n  - audio",
	))
	require.NoError(t, err)
	assert.Contains(t, f.read(t, "libraries-schema.json"), `"audio"`)
	assert.False(t, strings.HasSuffix(f.read(t, "tags.txt"), "\n"))
}

func TestIngestRejectedRunWritesNothing(t *testing.T) {
	typesPath := filepath.Join(t.TempDir(), "types.d.ts")
	f := newFixture(t, WithTypesPath(typesPath))
	require.NoError(t, os.WriteFile(f.path("tags.txt"), append(schema.DefaultTags(), []byte("\naudio\n")...), 0o644))
	broken := strings.Replace(dataset, `"authors": ["janedoe"]`, `"authors": ["janedoe"], "tags": ["not-a-tag"]`, 1)
	require.NoError(t, os.WriteFile(f.path("libraries.json"), []byte(broken), 0o644))

	schemaBefore := f.read(t, "libraries-schema.json")
	tagsBefore := f.read(t, "tags.txt")

	_, err := f.pipeline.Ingest(context.Background(), submission(
		"title: Sound\nurl: https://example.com/sound\ntags:\n  - audio",
	))
	requireFailedAt(t, err, StateValidated)
	assert.Equal(t, broken, f.read(t, "libraries.json"))
	assert.Equal(t, schemaBefore, f.read(t, "libraries-schema.json"))
	assert.Equal(t, tagsBefore, f.read(t, "tags.txt"))
	assert.NoFileExists(t, typesPath)
}

func TestIngestMergesExistingListing(t *testing.T) {
	f := newFixture(t)

	report, err := f.pipeline.Ingest(context.Background(), submission(
		"title: scribble\nurl: https://github.com/JujuAdams/Scribble\ndescription: Text renderer",
	))
	require.NoError(t, err)
	require.Len(t, report.Listings, 1)
	assert.Equal(t, store.UpsertMerged, report.Listings[0].Outcome)

	ds := f.load(t)
	require.Len(t, ds.Libraries, 1)
	assert.Equal(t, "Text renderer", ds.Libraries[0].Description)
	assert.Equal(t, []library.AuthorKey{"janedoe"}, ds.Libraries[0].AuthorKeys())
}

func TestIngestCRLF(t *testing.T) {
	f := newFixture(t)
	text := strings.ReplaceAll(submission("title: Input\nurl: https://github.com/jujuadams/input"), "\n", "\r\n")

	report, err := f.pipeline.Ingest(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, StatePersisted, report.State)
}

func TestIngestKeepsQueryStringURL(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Ingest(context.Background(), submission("title: Query\nurl: https://example.com/?a=1&b=2"))
	require.NoError(t, err)
	assert.Contains(t, f.read(t, "libraries.json"), `"url": "https://example.com/?a=1&b=2"`)
	assert.Equal(t, "https://example.com/?a=1&b=2", f.load(t).Libraries[1].URL)
}

func TestNewRequiresStores(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestIngestLogsOutcome(t *testing.T) {
	f := newFixture(t)
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	_, err := f.pipeline.Ingest(ctx, submission("title: Input\nurl: https://github.com/jujuadams/input", "name:"))
	require.NoError(t, err)
	tl.AssertContains(t, "Skipping empty code block")
	tl.AssertContains(t, "Submission persisted")
	tl.AssertContains(t, `"stage":"PERSISTED"`)

	_, err = f.pipeline.Ingest(ctx, "no blocks")
	require.Error(t, err)
	tl.AssertContains(t, `"state":"PARSED"`)
	tl.AssertContains(t, "Submission rejected")
	tl.AssertContains(t, `"stage":"FAILED"`)
}
