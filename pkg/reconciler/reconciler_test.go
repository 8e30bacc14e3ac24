package reconciler_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/reconciler"
)

// Helper function to build a registry in the given order
func newRegistry(t *testing.T, entries ...any) *library.Registry {
	t.Helper()
	reg := library.NewRegistry()
	for i := 0; i < len(entries); i += 2 {
		key := entries[i].(string)
		author := entries[i+1].(library.Author)
		require.NoError(t, reg.Add(library.AuthorKey(key), &author))
	}
	return reg
}

func inline(a library.Author) library.AuthorRef {
	return library.InlineRef(a)
}

func TestResolveKeyReference(t *testing.T) {
	reg := newRegistry(t, "janedoe", library.Author{Name: "Jane Doe"})

	res, err := reconciler.Resolve(context.Background(), library.KeyRef("janedoe"), reg)
	require.NoError(t, err)
	assert.Equal(t, reconciler.OutcomeReferenced, res.Outcome)
	assert.Equal(t, library.AuthorKey("janedoe"), res.Key)
	assert.Equal(t, "Jane Doe", res.Author.Name)
}

func TestResolveMissingKey(t *testing.T) {
	reg := newRegistry(t, "janedoe", library.Author{Name: "Jane Doe"})
	before := reg.Clone()

	_, err := reconciler.Resolve(context.Background(), library.KeyRef("ghost"), reg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAuthorKeyNotFound))
	assert.True(t, errors.IsReferential(err))
	assert.Contains(t, err.Error(), `"ghost"`)
	assert.True(t, before.Equal(reg))
}

func TestResolveMergesByGitHub(t *testing.T) {
	reg := newRegistry(t, "janedoe", library.Author{Name: "Jane Doe", GitHub: "janedoe"})

	res, err := reconciler.Resolve(context.Background(),
		inline(library.Author{GitHub: "janedoe", Website: "jane.dev"}), reg)
	require.NoError(t, err)

	assert.Equal(t, reconciler.OutcomeMerged, res.Outcome)
	assert.Equal(t, library.AuthorKey("janedoe"), res.Key)
	assert.Equal(t, []string{library.FieldWebsite}, res.Changed)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get("janedoe")
	require.True(t, ok)
	assert.Equal(t, library.Author{Name: "Jane Doe", GitHub: "janedoe", Website: "jane.dev"}, *got)
}

func TestResolveMatchIgnoresCaseAndWhitespace(t *testing.T) {
	reg := newRegistry(t, "straße", library.Author{Name: "Hans Straße"})

	res, err := reconciler.Resolve(context.Background(),
		inline(library.Author{Name: "  HANS STRASSE ", Twitter: "hans"}), reg)
	require.NoError(t, err)
	assert.Equal(t, reconciler.OutcomeMerged, res.Outcome)
	assert.Equal(t, 1, reg.Len())

	got, _ := reg.Get("straße")
	assert.Equal(t, "HANS STRASSE", got.Name, "populated fields overwrite")
	assert.Equal(t, "hans", got.Twitter)
}

func TestResolveNameMatchMergesInPlace(t *testing.T) {
	reg := newRegistry(t,
		"alice", library.Author{Name: "Alice", GitHub: "alice", Affiliations: []string{"Acme"}},
		"bob", library.Author{Name: "Bob"},
	)
	alice, _ := reg.Get("alice")

	res, err := reconciler.Resolve(context.Background(),
		inline(library.Author{Name: "alice", Discord: "alice#1", Affiliations: []string{"acme", "Guild"}}), reg)
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	assert.Same(t, alice, res.Author)
	assert.Equal(t, "alice", alice.GitHub, "absent fields never erase")
	assert.Equal(t, "alice#1", alice.Discord)
	assert.Equal(t, []string{"Acme", "Guild"}, alice.Affiliations)
	assert.Contains(t, res.Changed, library.FieldAffiliations)
	assert.Equal(t, []library.AuthorKey{"alice", "bob"}, reg.Keys())
}

func TestResolveFirstMatchWins(t *testing.T) {
	reg := newRegistry(t,
		"first", library.Author{Name: "Sam", GitHub: "sam-one"},
		"second", library.Author{Name: "Sam Two", GitHub: "sam"},
	)

	res, err := reconciler.Resolve(context.Background(),
		inline(library.Author{Name: "Sam", GitHub: "sam"}), reg)
	require.NoError(t, err)
	assert.Equal(t, library.AuthorKey("first"), res.Key)
}

func TestResolveWithoutNameFails(t *testing.T) {
	reg := newRegistry(t, "janedoe", library.Author{Name: "Jane Doe", GitHub: "janedoe"})
	before := reg.Clone()

	_, err := reconciler.Resolve(context.Background(), inline(library.Author{GitHub: "nobody"}), reg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAuthorMustHaveName))
	assert.True(t, errors.IsReconciliation(err))
	assert.Contains(t, err.Error(), "github=nobody")
	assert.True(t, before.Equal(reg), "registry unchanged")
}

func TestResolveCreates(t *testing.T) {
	reg := newRegistry(t, "jane-doe", library.Author{Name: "Jane Doe"})

	res, err := reconciler.Resolve(context.Background(),
		inline(library.Author{Name: "John Smith", GitHub: "jsmith"}), reg)
	require.NoError(t, err)
	assert.Equal(t, reconciler.OutcomeCreated, res.Outcome)
	assert.Equal(t, library.AuthorKey("john-smith"), res.Key)
	assert.Equal(t, []library.AuthorKey{"jane-doe", "john-smith"}, reg.Keys())
}

func TestFieldMatcherMergesNamesakes(t *testing.T) {
	// Two different people named Alex share a record under the default matcher.
	reg := newRegistry(t, "alex", library.Author{Name: "Alex", GitHub: "alex-a"})

	res, err := reconciler.Resolve(context.Background(),
		inline(library.Author{Name: "Alex", GitHub: "alex-b"}), reg)
	require.NoError(t, err)
	assert.Equal(t, reconciler.OutcomeMerged, res.Outcome)
	assert.Equal(t, 1, reg.Len())

	got, _ := reg.Get("alex")
	assert.Equal(t, "alex-b", got.GitHub)
}

func TestStrictMatcher(t *testing.T) {
	r, err := reconciler.New(reconciler.WithMatcher(reconciler.StrictMatcher{}))
	require.NoError(t, err)
	assert.Equal(t, "strict", r.Matcher().Name())

	reg := newRegistry(t, "alex", library.Author{Name: "Alex", GitHub: "alex-a"})

	res, err := r.Resolve(context.Background(), inline(library.Author{Name: "Alex", GitHub: "alex-b"}), reg)
	require.NoError(t, err)
	assert.Equal(t, reconciler.OutcomeCreated, res.Outcome)
	assert.Equal(t, library.AuthorKey("alex-2"), res.Key)

	res, err = r.Resolve(context.Background(), inline(library.Author{Name: "alex", Website: "alex.dev"}), reg)
	require.NoError(t, err)
	assert.Equal(t, reconciler.OutcomeMerged, res.Outcome)
	assert.Equal(t, library.AuthorKey("alex"), res.Key)
}

func TestMatchers(t *testing.T) {
	existing := &library.Author{Name: "Jane Doe", GitHub: "janedoe", Twitter: "jd"}

	tests := []struct {
		name      string
		matcher   reconciler.Matcher
		candidate library.Author
		want      bool
	}{
		{"field github", reconciler.FieldMatcher{}, library.Author{GitHub: "JANEDOE"}, true},
		{"field nothing shared", reconciler.FieldMatcher{}, library.Author{Name: "John"}, false},
		{"field empty candidate", reconciler.FieldMatcher{}, library.Author{}, false},
		{"field blank values", reconciler.FieldMatcher{}, library.Author{Website: "  "}, false},
		{"field affiliations ignored", reconciler.FieldMatcher{}, library.Author{Affiliations: []string{"x"}}, false},
		{"strict name only", reconciler.StrictMatcher{}, library.Author{Name: "jane doe"}, true},
		{"strict conflict", reconciler.StrictMatcher{}, library.Author{Name: "Jane Doe", Twitter: "other"}, false},
		{"strict no name", reconciler.StrictMatcher{}, library.Author{GitHub: "janedoe"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.Match(&tt.candidate, existing))
		})
	}
}

func TestWithMatcherNil(t *testing.T) {
	_, err := reconciler.New(reconciler.WithMatcher(nil))
	assert.Error(t, err)
}

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want library.AuthorKey
	}{
		{"simple", "Jane Doe", "jane-doe"},
		{"diacritics", "Zoë Ångström", "zoe-angstrom"},
		{"ligature", "ﬁnn", "finn"},
		{"keeps dots and underscores", "j.r._smith", "j.r._smith"},
		{"collapses runs", "  Bob -- & -- Co!  ", "bob-co"},
		{"too short", "A", "author"},
		{"no latin letters", "日本", "author"},
		{"truncated", strings.Repeat("a", 100), library.AuthorKey(strings.Repeat("a", 64))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconciler.DeriveKey(tt.in, library.NewRegistry()))
		})
	}
}

func TestDeriveKeyCollisions(t *testing.T) {
	reg := newRegistry(t,
		"jane-doe", library.Author{Name: "Jane Doe"},
		"jane-doe-2", library.Author{Name: "Jane Doe"},
	)
	assert.Equal(t, library.AuthorKey("jane-doe-3"), reconciler.DeriveKey("Jane Doe", reg))

	long := strings.Repeat("a", 64)
	reg = newRegistry(t, long, library.Author{Name: long})
	key := reconciler.DeriveKey(long, reg)
	assert.Equal(t, library.AuthorKey(strings.Repeat("a", 62)+"-2"), key)
	assert.LessOrEqual(t, len(key), 64)

	assert.Equal(t, reconciler.DeriveKey("Jane Doe", reg), reconciler.DeriveKey("Jane Doe", reg), "deterministic")
}
