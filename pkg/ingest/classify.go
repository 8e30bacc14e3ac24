package ingest

import (
	"encoding/json"

	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/schema"
	"github.com/agentstation/curator/pkg/validator"
)

// BlockKind is the record shape a block was classified as.
type BlockKind string

// String returns the string representation of a block kind.
func (k BlockKind) String() string {
	return string(k)
}

// Block kinds.
const (
	BlockLibrary BlockKind = "library"
	BlockAuthor  BlockKind = "author"
	BlockSkipped BlockKind = "skipped"
)

// block is a classified fenced block. Exactly one of lib and author is set
// unless the block was skipped.
type block struct {
	index  int
	kind   BlockKind
	lib    *library.Library
	author *library.Author
}

// definitionChecker validates a value against one schema definition.
type definitionChecker interface {
	ValidateDefinition(name string, value any) *validator.Result
}

// classify decides whether a pruned block is a library or an author, trying
// the library shape first.
func classify(index int, value any, v definitionChecker) (block, error) {
	if _, ok := value.(map[string]any); !ok {
		return block{}, &errors.UnclassifiedBlockError{
			Block:   index,
			Reasons: []string{"block must be a mapping of field names to values"},
		}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return block{}, errors.WrapParse("json", "", err)
	}

	libRes := v.ValidateDefinition(schema.DefinitionLibrary, raw)
	if libRes.Valid() {
		var lib library.Library
		if err := json.Unmarshal(raw, &lib); err != nil {
			return block{}, &errors.ParseError{Format: "yaml", Block: index + 1, Message: err.Error(), Err: err}
		}
		return block{index: index, kind: BlockLibrary, lib: &lib}, nil
	}

	authorRes := v.ValidateDefinition(schema.DefinitionAuthor, raw)
	if authorRes.Valid() {
		var a library.Author
		if err := json.Unmarshal(raw, &a); err != nil {
			return block{}, &errors.ParseError{Format: "yaml", Block: index + 1, Message: err.Error(), Err: err}
		}
		return block{index: index, kind: BlockAuthor, author: &a}, nil
	}

	var reasons []string
	for _, m := range libRes.Messages() {
		reasons = append(reasons, "as library: "+m)
	}
	for _, m := range authorRes.Messages() {
		reasons = append(reasons, "as author: "+m)
	}
	return block{}, &errors.UnclassifiedBlockError{Block: index, Reasons: reasons}
}
