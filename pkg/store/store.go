// Package store loads and persists the library dataset. Every write is
// gated on schema validation and replaces the file atomically.
package store

import (
	"context"
	"encoding/json"
	"os"

	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/logging"
	"github.com/agentstation/curator/pkg/validator"
)

// Validator checks a dataset against the schema.
type Validator interface {
	Validate(value any) *validator.Result
}

// Store reads and writes the dataset file.
type Store struct {
	path      string
	validator Validator
}

// New creates a store for the dataset at path. A nil validator is allowed
// for read-only use; saving then fails.
func New(path string, v Validator) *Store {
	return &Store{path: path, validator: v}
}

// WithValidator returns a copy of the store that validates with v.
func (s *Store) WithValidator(v Validator) *Store {
	return &Store{path: s.path, validator: v}
}

// Path returns the dataset location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the dataset and checks that every author key referenced by a
// listing exists in the registry.
func (s *Store) Load(ctx context.Context) (*library.Dataset, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WrapResource("load", "dataset", s.path, errors.WrapIO("read", s.path, err))
	}
	ds, err := Decode(raw)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.File = s.path
		}
		return nil, err
	}
	if err := CheckReferences(ds); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("path", s.path).
		Int("libraries", len(ds.Libraries)).
		Int("authors", ds.Authors.Len()).
		Msg("Loaded dataset")
	return ds, nil
}

// Validate checks ds against the schema without writing anything.
func (s *Store) Validate(ds *library.Dataset) (*validator.Result, error) {
	if s.validator == nil {
		return nil, errors.NewConfigError("store", "no validator configured", nil)
	}
	ds.Normalize()
	return s.validator.Validate(ds), nil
}

// ValidateFile checks the dataset file as stored, including any fields the
// dataset model does not know about.
func (s *Store) ValidateFile() (*validator.Result, error) {
	if s.validator == nil {
		return nil, errors.NewConfigError("store", "no validator configured", nil)
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}
	return s.validator.Validate(raw), nil
}

// ValidateThenSave validates ds and, only when it is valid, overwrites the
// dataset file with its canonical encoding. On a validation failure the
// returned error is a *errors.SchemaValidationError listing every
// violation and the file is left untouched.
func (s *Store) ValidateThenSave(ctx context.Context, ds *library.Dataset) error {
	logger := logging.FromContext(ctx)

	res, err := s.Validate(ds)
	if err != nil {
		return err
	}
	if !res.Valid() {
		logger.Warn().Int("violations", len(res.Violations)).Msg("Dataset failed validation, not saving")
		return res.Err()
	}

	data, err := Encode(ds)
	if err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(s.path, data); err != nil {
		return errors.WrapResource("save", "dataset", s.path, err)
	}

	logger.Info().
		Str("path", s.path).
		Int("libraries", len(ds.Libraries)).
		Int("authors", ds.Authors.Len()).
		Msg("Saved dataset")
	return nil
}

// Decode parses dataset JSON, keeping the author registry in document order.
func Decode(raw []byte) (*library.Dataset, error) {
	var ds library.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, &errors.ParseError{Format: "json", Message: err.Error(), Err: err}
	}
	ds.Normalize()
	return &ds, nil
}

// Encode renders ds in its canonical form: struct field order, registry
// order, two-space indent and a trailing newline.
func Encode(ds *library.Dataset) ([]byte, error) {
	ds.Normalize()
	return fileutil.MarshalPretty(ds)
}

// CheckReferences returns a *errors.ReferentialError for the first listing
// that references an author key missing from the registry.
func CheckReferences(ds *library.Dataset) error {
	dangling := ds.DanglingReferences()
	if len(dangling) == 0 {
		return nil
	}
	return errors.NewReferentialError(dangling[0].Listing, dangling[0].Key.String())
}
