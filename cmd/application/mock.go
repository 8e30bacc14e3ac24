package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/ingest"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/store"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the stores and pipeline are built from Paths,
// and the remaining methods return a default value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    PathsFunc: func() application.Paths {
//	        return application.PathsIn(dir)
//	    },
//	}
//	cmd := validate.NewCommand(mock)
type Mock struct {
	PathsFunc        func() Paths
	LabelFunc        func() string
	SchemaStoreFunc  func() *schema.Store
	DatasetStoreFunc func() *store.Store
	PipelineFunc     func(dryRun bool) (*ingest.Pipeline, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Paths returns paths using the mock function or the layout of the working directory.
func (m *Mock) Paths() Paths {
	if m.PathsFunc != nil {
		return m.PathsFunc()
	}
	return PathsIn(constants.DefaultDataDir)
}

// Label returns the label using the mock function or the default submission label.
func (m *Mock) Label() string {
	if m.LabelFunc != nil {
		return m.LabelFunc()
	}
	return constants.SubmissionLabel
}

// SchemaStore returns a schema store using the mock function or one over Paths.
func (m *Mock) SchemaStore() *schema.Store {
	if m.SchemaStoreFunc != nil {
		return m.SchemaStoreFunc()
	}
	p := m.Paths()
	return schema.NewStore(p.Schema, p.Tags)
}

// DatasetStore returns a dataset store using the mock function or one over Paths.
func (m *Mock) DatasetStore() *store.Store {
	if m.DatasetStoreFunc != nil {
		return m.DatasetStoreFunc()
	}
	return store.New(m.Paths().Dataset, nil)
}

// Pipeline returns a pipeline using the mock function or one over the mock stores.
func (m *Mock) Pipeline(dryRun bool) (*ingest.Pipeline, error) {
	if m.PipelineFunc != nil {
		return m.PipelineFunc(dryRun)
	}
	return ingest.New(m.SchemaStore(), m.DatasetStore(),
		ingest.WithDryRun(dryRun),
		ingest.WithTypesPath(m.Paths().Types),
	)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
