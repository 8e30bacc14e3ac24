// Package app provides the application context and dependency management
// for the curator CLI. It centralizes configuration, logging and the
// construction of the stores every command works against.
package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/curator/cmd/application"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/ingest"
	"github.com/agentstation/curator/pkg/reconciler"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/store"
)

// App represents the curator application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Command streams; nil means the process streams.
	in  io.Reader
	out io.Writer
}

// New creates a new App instance with the given version information.
// The app is initialized from LoadConfig and can be customized using
// functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Paths returns the configured file locations.
func (a *App) Paths() application.Paths {
	return a.config.Paths()
}

// Label returns the submission label.
func (a *App) Label() string {
	return a.config.Label
}

// SchemaStore returns a store over the configured schema and tag list.
func (a *App) SchemaStore() *schema.Store {
	p := a.Paths()
	return schema.NewStore(p.Schema, p.Tags)
}

// DatasetStore returns a store over the configured dataset.
func (a *App) DatasetStore() *store.Store {
	return store.New(a.Paths().Dataset, nil)
}

// Pipeline builds an ingestion pipeline using the configured matcher.
func (a *App) Pipeline(dryRun bool) (*ingest.Pipeline, error) {
	r, err := reconciler.New(reconciler.WithMatcher(a.matcher()))
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", a.config.Matcher, err)
	}
	return ingest.New(a.SchemaStore(), a.DatasetStore(),
		ingest.WithReconciler(r),
		ingest.WithDryRun(dryRun),
		ingest.WithTypesPath(a.Paths().Types),
	)
}

// Shutdown performs graceful shutdown of the application. Every command
// finishes its writes before returning, so there is nothing to stop.
func (a *App) Shutdown(_ context.Context) error {
	return nil
}

func (a *App) matcher() reconciler.Matcher {
	if a.config.Matcher == "strict" {
		return reconciler.StrictMatcher{}
	}
	return reconciler.FieldMatcher{}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithIO sets the streams commands read submissions from and print to.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) error {
		a.in = in
		a.out = out
		return nil
	}
}
