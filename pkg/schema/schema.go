package schema

import (
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
)

// Definition names the schema must carry.
const (
	DefinitionAuthor        = "author"
	DefinitionLibrary       = "library"
	DefinitionAuthorKey     = "authorKey"
	DefinitionTag           = "tag"
	DefinitionCompatibility = "compatibility"
)

const tagEnumPath = "definitions.tag.enum"

// Schema is an immutable snapshot of the schema document.
type Schema struct {
	raw []byte
}

// Parse checks that raw is a schema document curator can work with and
// returns a snapshot of it.
func Parse(raw []byte) (*Schema, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &errors.ParseError{Format: "json", Message: "schema document is not valid JSON"}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, &errors.ParseError{Format: "json", Message: "schema document must be an object"}
	}
	for _, name := range []string{DefinitionAuthor, DefinitionLibrary} {
		if !doc.Get("definitions." + name + ".properties").IsObject() {
			return nil, &errors.ValidationError{
				Field:   "definitions." + name,
				Message: "schema must define " + name + " with properties",
			}
		}
	}
	return &Schema{raw: slices.Clone(raw)}, nil
}

// Raw returns a copy of the document bytes.
func (s *Schema) Raw() []byte {
	return slices.Clone(s.raw)
}

// Tags returns the tag enumeration.
func (s *Schema) Tags() []string {
	return s.strings(tagEnumPath)
}

// Compatibility returns the allowed compatibility values.
func (s *Schema) Compatibility() []string {
	return s.strings("definitions.compatibility.items.enum")
}

// AuthorFields returns the author property names in document order.
func (s *Schema) AuthorFields() []string {
	return s.keys("definitions.author.properties")
}

// LibraryFields returns the library property names in document order.
func (s *Schema) LibraryFields() []string {
	return s.keys("definitions.library.properties")
}

// Definition returns the raw JSON of a named definition.
func (s *Schema) Definition(name string) ([]byte, bool) {
	r := gjson.GetBytes(s.raw, "definitions."+gjsonEscape(name))
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}

// Definitions returns the definition names in document order.
func (s *Schema) Definitions() []string {
	return s.keys("definitions")
}

// Description returns the description of a property of a definition, or
// of the definition itself when property is empty.
func (s *Schema) Description(definition, property string) string {
	path := "definitions." + gjsonEscape(definition)
	if property != "" {
		path += ".properties." + gjsonEscape(property)
	}
	return gjson.GetBytes(s.raw, path+".description").String()
}

// Title returns the document title.
func (s *Schema) Title() string {
	return gjson.GetBytes(s.raw, "title").String()
}

// WithTags returns a new snapshot whose tag enumeration is tags. The rest
// of the document is left as is and the result is pretty-printed.
func (s *Schema) WithTags(tags []string) (*Schema, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := sjson.SetBytes(slices.Clone(s.raw), tagEnumPath, tags)
	if err != nil {
		return nil, errors.WrapResource("update", "schema", "tag enum", err)
	}
	return &Schema{raw: fileutil.PrettyJSON(raw)}, nil
}

func (s *Schema) strings(path string) []string {
	var out []string
	gjson.GetBytes(s.raw, path).ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}

func (s *Schema) keys(path string) []string {
	var out []string
	gjson.GetBytes(s.raw, path).ForEach(func(k, _ gjson.Result) bool {
		out = append(out, k.String())
		return true
	})
	return out
}

// gjsonEscape escapes the path syntax characters gjson treats specially.
func gjsonEscape(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '*', '?', '|', '#', '@', '\\':
			b = append(b, '\\')
		}
		b = append(b, s[i])
	}
	return string(b)
}
