package schema

import (
	"context"
	"os"
	"slices"

	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/logging"
)

// Store reads and updates the schema file and its tag list.
type Store struct {
	schemaPath string
	tagsPath   string
}

// NewStore creates a store over the given schema and tag list files.
func NewStore(schemaPath, tagsPath string) *Store {
	return &Store{schemaPath: schemaPath, tagsPath: tagsPath}
}

// SchemaPath returns the schema file location.
func (s *Store) SchemaPath() string { return s.schemaPath }

// TagsPath returns the tag list location.
func (s *Store) TagsPath() string { return s.tagsPath }

// Load reads the schema file and returns a snapshot. It has no side effects.
func (s *Store) Load() (*Schema, error) {
	raw, err := os.ReadFile(s.schemaPath)
	if err != nil {
		return nil, errors.WrapResource("load", "schema", s.schemaPath, errors.WrapIO("read", s.schemaPath, err))
	}
	snap, err := Parse(raw)
	if err != nil {
		return nil, errors.WrapResource("load", "schema", s.schemaPath, err)
	}
	return snap, nil
}

// Preview returns the snapshot SyncTags would produce without writing
// either file.
func (s *Store) Preview() (*Schema, error) {
	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.tagsPath)
	if err != nil {
		return nil, errors.WrapResource("sync", "tags", s.tagsPath, errors.WrapIO("read", s.tagsPath, err))
	}
	tags := CanonicalTags(string(data))
	if slices.Equal(snap.Tags(), tags) {
		return snap, nil
	}
	return snap.WithTags(tags)
}

// SyncTags canonicalizes the tag list, writes it into the schema's tag
// enumeration and persists the schema when it changed. The returned
// snapshot reflects the synced document.
func (s *Store) SyncTags(ctx context.Context) (*Schema, error) {
	logger := logging.FromContext(ctx)

	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	tags, err := LoadTags(s.tagsPath)
	if err != nil {
		return nil, errors.WrapResource("sync", "tags", s.tagsPath, err)
	}

	if slices.Equal(snap.Tags(), tags) {
		logger.Debug().Int("tags", len(tags)).Msg("Schema tags already in sync")
		return snap, nil
	}

	updated, err := snap.WithTags(tags)
	if err != nil {
		return nil, err
	}
	if _, err := fileutil.WriteIfChanged(s.schemaPath, updated.raw); err != nil {
		return nil, errors.WrapResource("save", "schema", s.schemaPath, err)
	}

	logger.Info().
		Int("tags", len(tags)).
		Str("schema", s.schemaPath).
		Msg("Synced tags into schema")
	return updated, nil
}
