package ingest

import (
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/reconciler"
)

type options struct {
	reconciler *reconciler.Reconciler
	dryRun     bool
	typesPath  string
}

func defaultOptions() (*options, error) {
	r, err := reconciler.New()
	if err != nil {
		return nil, err
	}
	return &options{reconciler: r}, nil
}

// Option is a function that configures a Pipeline.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o, err := defaultOptions()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithReconciler sets the author reconciler.
func WithReconciler(r *reconciler.Reconciler) Option {
	return func(o *options) error {
		if r == nil {
			return &errors.ValidationError{
				Field:   "reconciler",
				Message: "cannot be nil",
			}
		}
		o.reconciler = r
		return nil
	}
}

// WithDryRun stops the pipeline after validation. Nothing is written.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithTypesPath regenerates the TypeScript declarations at path whenever
// the schema is synced.
func WithTypesPath(path string) Option {
	return func(o *options) error {
		o.typesPath = path
		return nil
	}
}
