package library

import (
	"bytes"
	"encoding/json"

	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
)

// AuthorRef is an entry in a listing's authors list: either a key into the
// registry or an inline, possibly partial, author record.
type AuthorRef struct {
	Key    AuthorKey
	Inline *Author
}

// KeyRef returns a reference to a registry entry.
func KeyRef(key AuthorKey) AuthorRef {
	return AuthorRef{Key: key}
}

// InlineRef returns an inline author reference.
func InlineRef(author Author) AuthorRef {
	return AuthorRef{Inline: &author}
}

// IsKey reports whether the reference points into the registry.
func (r AuthorRef) IsKey() bool {
	return r.Inline == nil
}

// MarshalJSON encodes keys as strings and inline authors as objects.
func (r AuthorRef) MarshalJSON() ([]byte, error) {
	if r.Inline != nil {
		return fileutil.MarshalLiteral(r.Inline)
	}
	return fileutil.MarshalLiteral(string(r.Key))
}

// UnmarshalJSON accepts either form.
func (r *AuthorRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &errors.ParseError{Format: "json", Message: "empty author reference"}
	}
	switch data[0] {
	case '"':
		var key string
		if err := json.Unmarshal(data, &key); err != nil {
			return err
		}
		*r = AuthorRef{Key: AuthorKey(key)}
		return nil
	case '{':
		var a Author
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*r = AuthorRef{Inline: &a}
		return nil
	default:
		return &errors.ParseError{Format: "json", Message: "author reference must be a key or an object, got " + string(data)}
	}
}
