// Package ingest turns a free-text submission into dataset changes.
//
// A submission carries one or more ```yaml fenced blocks, each describing a
// library listing or an author. The pipeline moves through the states
// RECEIVED, PARSED, CLASSIFIED, RECONCILED, VALIDATED and PERSISTED, and
// ends in FAILED on the first error. The dataset file is only written in
// the final step, so a failed run leaves it byte-identical.
package ingest

import (
	"context"
	"slices"

	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/logging"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/store"
	"github.com/agentstation/curator/pkg/validator"
)

// Pipeline ingests submissions into one dataset.
type Pipeline struct {
	schemas *schema.Store
	store   *store.Store
	opts    *options
}

// New creates a pipeline over the given schema and dataset stores.
func New(schemas *schema.Store, st *store.Store, opts ...Option) (*Pipeline, error) {
	if schemas == nil || st == nil {
		return nil, &errors.ValidationError{Field: "stores", Message: "schema and dataset stores are required"}
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Pipeline{schemas: schemas, store: st, opts: o}, nil
}

// Ingest processes one submission. The returned report is never nil; on
// failure the error is an *Error naming the failed state.
func (p *Pipeline) Ingest(ctx context.Context, text string) (*Report, error) {
	base := logging.WithOperation(ctx, "ingest")
	logger := logging.FromContext(base)
	report := &Report{DryRun: p.opts.dryRun}

	enter := func(state State) {
		report.advance(state)
		ctx = logging.WithStage(base, state.String())
		logger = logging.FromContext(ctx)
	}
	fail := func(state State, err error) (*Report, error) {
		enter(StateFailed)
		logger.Error().Err(err).Str("state", state.String()).Msg("Submission rejected")
		return report, &Error{State: state, Err: err}
	}

	enter(StateReceived)
	snap, err := p.schemas.Preview()
	if err != nil {
		return fail(StateReceived, err)
	}
	v, err := validator.Compile(snap)
	if err != nil {
		return fail(StateReceived, err)
	}
	ds, err := p.store.Load(ctx)
	if err != nil {
		return fail(StateReceived, err)
	}

	// PARSED
	contents := ExtractBlocks(text)
	if len(contents) == 0 {
		return fail(StateParsed, &errors.ParseError{Message: errors.ErrNoCodeBlocks.Error(), Err: errors.ErrNoCodeBlocks})
	}
	values := make([]any, len(contents))
	for i, content := range contents {
		if values[i], err = decodeBlock(i, content); err != nil {
			return fail(StateParsed, err)
		}
	}
	enter(StateParsed)
	logger.Debug().Int("blocks", len(values)).Msg("Parsed code blocks")

	// CLASSIFIED
	var libs, authors []block
	for i, value := range values {
		pruned, ok := prune(value)
		if !ok {
			logger.Warn().Int("block", i+1).Msg("Skipping empty code block")
			report.Blocks = append(report.Blocks, BlockOutcome{Index: i, Kind: BlockSkipped, Summary: "empty"})
			continue
		}
		b, err := classify(i, pruned, v)
		if err != nil {
			return fail(StateClassified, err)
		}
		switch b.kind {
		case BlockLibrary:
			libs = append(libs, b)
			report.Blocks = append(report.Blocks, BlockOutcome{Index: i, Kind: b.kind, Summary: b.lib.Title})
		case BlockAuthor:
			authors = append(authors, b)
			report.Blocks = append(report.Blocks, BlockOutcome{Index: i, Kind: b.kind, Summary: b.author.Describe()})
		}
	}
	if len(libs)+len(authors) == 0 {
		return fail(StateClassified, errors.NewValidationError("submission", nil, "every code block is empty"))
	}
	enter(StateClassified)

	// RECONCILED
	working := ds.Clone()
	if err := p.reconcile(ctx, working, libs, authors, report); err != nil {
		return fail(StateReconciled, err)
	}
	enter(StateReconciled)

	// VALIDATED against the previewed schema. Nothing is written before PERSISTED.
	res, err := p.store.WithValidator(v).Validate(working)
	if err != nil {
		return fail(StateValidated, err)
	}
	if !res.Valid() {
		return fail(StateValidated, res.Err())
	}
	enter(StateValidated)
	if p.opts.dryRun {
		logger.Info().Str("report", report.String()).Msg("Dry run complete, nothing written")
		return report, nil
	}

	// PERSISTED
	synced, err := p.schemas.SyncTags(ctx)
	if err != nil {
		return fail(StatePersisted, err)
	}
	var vopts []validator.Option
	if p.opts.typesPath != "" {
		vopts = append(vopts, validator.WithTypesPath(p.opts.typesPath))
	}
	if v, err = validator.Compile(synced, vopts...); err != nil {
		return fail(StatePersisted, err)
	}
	if err := p.store.WithValidator(v).ValidateThenSave(ctx, working); err != nil {
		return fail(StatePersisted, err)
	}
	enter(StatePersisted)
	logger.Info().Str("report", report.String()).Msg("Submission persisted")
	return report, nil
}

// reconcile resolves every author in the submission against ds and
// upserts the submitted listings. Authors submitted in their own blocks are
// credited on every submitted listing.
func (p *Pipeline) reconcile(ctx context.Context, ds *library.Dataset, libs, authors []block, report *Report) error {
	var standalone []library.AuthorKey
	for _, b := range authors {
		res, err := p.opts.reconciler.Resolve(ctx, library.InlineRef(*b.author), ds.Authors)
		if err != nil {
			return err
		}
		report.addAuthor(res)
		if !slices.Contains(standalone, res.Key) {
			standalone = append(standalone, res.Key)
		}
	}

	for _, b := range libs {
		lib := *b.lib
		var refs []library.AuthorRef
		for _, ref := range lib.Authors {
			res, err := p.opts.reconciler.Resolve(ctx, ref, ds.Authors)
			if err != nil {
				var re *errors.ReferentialError
				if errors.As(err, &re) {
					re.Listing = lib.Title
				}
				return err
			}
			report.addAuthor(res)
			refs = appendRef(refs, res.Key)
		}
		for _, key := range standalone {
			refs = appendRef(refs, key)
		}
		lib.Authors = refs

		outcome, idx := store.Upsert(ds, lib)
		report.Listings = append(report.Listings, ListingChange{
			Title:   lib.Title,
			URL:     lib.URL,
			Outcome: outcome,
			Index:   idx,
		})
	}
	return nil
}

func appendRef(refs []library.AuthorRef, key library.AuthorKey) []library.AuthorRef {
	for _, r := range refs {
		if r.IsKey() && r.Key == key {
			return refs
		}
	}
	return append(refs, library.KeyRef(key))
}
