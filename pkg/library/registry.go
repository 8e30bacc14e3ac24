package library

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
)

// Registry is the ordered author map of a dataset. Iteration follows
// insertion order, which for a loaded dataset is document order.
// A Registry is not safe for concurrent use.
type Registry struct {
	keys    []AuthorKey
	authors map[AuthorKey]*Author
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{authors: make(map[AuthorKey]*Author)}
}

// Get returns an author by key and whether it exists.
func (r *Registry) Get(key AuthorKey) (*Author, bool) {
	a, ok := r.authors[key]
	return a, ok
}

// Has checks if an author exists without returning it.
func (r *Registry) Has(key AuthorKey) bool {
	_, ok := r.authors[key]
	return ok
}

// Add appends an author, returning an error if the key is taken.
func (r *Registry) Add(key AuthorKey, author *Author) error {
	if author == nil {
		return &errors.ValidationError{
			Field:   "author",
			Message: "cannot be nil",
		}
	}
	if r.authors == nil {
		r.authors = make(map[AuthorKey]*Author)
	}
	if _, exists := r.authors[key]; exists {
		return &errors.ValidationError{
			Field:   "authors." + string(key),
			Value:   key,
			Message: "already exists",
		}
	}
	r.keys = append(r.keys, key)
	r.authors[key] = author
	return nil
}

// Len returns the number of authors.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Keys returns the keys in registry order.
func (r *Registry) Keys() []AuthorKey {
	out := make([]AuthorKey, len(r.keys))
	copy(out, r.keys)
	return out
}

// ForEach visits authors in registry order until fn returns false.
func (r *Registry) ForEach(fn func(key AuthorKey, author *Author) bool) {
	for _, k := range r.keys {
		if !fn(k, r.authors[k]) {
			return
		}
	}
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for _, k := range r.keys {
		_ = c.Add(k, r.authors[k].Clone())
	}
	return c
}

// Equal reports whether both registries hold equal authors in the same order.
func (r *Registry) Equal(o *Registry) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.keys) != len(o.keys) {
		return false
	}
	for i, k := range r.keys {
		if o.keys[i] != k {
			return false
		}
		a, b := r.authors[k], o.authors[k]
		ab, _ := json.Marshal(a)
		bb, _ := json.Marshal(b)
		if !bytes.Equal(ab, bb) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the authors as an object in registry order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := fileutil.MarshalLiteral(string(k))
		if err != nil {
			return nil, err
		}
		ab, err := fileutil.MarshalLiteral(r.authors[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(ab)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an authors object, keeping document order and
// rejecting duplicate keys.
func (r *Registry) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return &errors.ParseError{Format: "json", Message: "authors is not valid JSON"}
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return &errors.ParseError{Format: "json", Message: "authors must be an object"}
	}

	reg := NewRegistry()
	var err error
	parsed.ForEach(func(key, value gjson.Result) bool {
		var a Author
		if err = json.Unmarshal([]byte(value.Raw), &a); err != nil {
			err = errors.WrapParse("json", "authors."+key.String(), err)
			return false
		}
		if err = reg.Add(AuthorKey(key.String()), &a); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	*r = *reg
	return nil
}
