// Package validator compiles the schema document into a reusable JSON
// Schema validator and reports every violation a value has, not just the
// first.
package validator

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/schema"
)

const resourceURL = "libraries-schema.json"

var printer = message.NewPrinter(language.English)

// Validator checks values against a compiled schema. It is safe to reuse.
type Validator struct {
	schema *schema.Schema
	root   *jsonschema.Schema
	defs   map[string]*jsonschema.Schema
}

// Compile builds a validator for the given schema snapshot. Format
// assertions (uri, date, ...) are enabled.
func Compile(s *schema.Schema, opts ...Option) (*Validator, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(s.Raw()))
	if err != nil {
		return nil, errors.WrapResource("compile", "validator", "", err)
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	c.AssertFormat()
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, errors.WrapResource("compile", "validator", "", err)
	}

	root, err := c.Compile(resourceURL)
	if err != nil {
		return nil, errors.WrapResource("compile", "validator", "", err)
	}

	v := &Validator{schema: s, root: root, defs: make(map[string]*jsonschema.Schema)}
	for _, name := range []string{schema.DefinitionAuthor, schema.DefinitionLibrary} {
		def, err := c.Compile(resourceURL + "#/definitions/" + name)
		if err != nil {
			return nil, errors.WrapResource("compile", "validator", name, err)
		}
		v.defs[name] = def
	}

	if o.typesPath != "" {
		types, err := GenerateTypes(s)
		if err != nil {
			return nil, err
		}
		if _, err := fileutil.WriteIfChanged(o.typesPath, types); err != nil {
			return nil, errors.WrapResource("save", "types", o.typesPath, err)
		}
	}

	return v, nil
}

// Schema returns the snapshot the validator was compiled from.
func (v *Validator) Schema() *schema.Schema {
	return v.schema
}

// Validate checks a whole dataset document. value may be raw JSON bytes or
// anything encoding/json can marshal.
func (v *Validator) Validate(value any) *Result {
	return run(v.root, "dataset", value)
}

// ValidateDefinition checks value against a single definition, such as
// "author" or "library".
func (v *Validator) ValidateDefinition(name string, value any) *Result {
	def, ok := v.defs[name]
	if !ok {
		return &Result{
			Subject: name,
			Violations: []errors.Violation{{
				KeywordLocation: "/definitions/" + name,
				Message:         "unknown definition " + name,
			}},
		}
	}
	return run(def, name, value)
}

func run(sch *jsonschema.Schema, subject string, value any) *Result {
	res := &Result{Subject: subject}

	inst, err := instance(value)
	if err != nil {
		res.Violations = append(res.Violations, errors.Violation{Message: err.Error()})
		return res
	}

	err = sch.Validate(inst)
	if err == nil {
		return res
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		res.Violations = append(res.Violations, errors.Violation{Message: err.Error()})
		return res
	}
	collect(ve, &res.Violations)
	return res
}

// instance converts value into the generic form the validator walks.
func instance(value any) (any, error) {
	var raw []byte
	switch t := value.(type) {
	case []byte:
		raw = t
	case json.RawMessage:
		raw = t
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
		raw = b
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return inst, nil
}

// collect flattens the error tree into its leaves.
func collect(ve *jsonschema.ValidationError, out *[]errors.Violation) {
	if len(ve.Causes) == 0 {
		*out = append(*out, errors.Violation{
			InstanceLocation: pointer(ve.InstanceLocation),
			KeywordLocation:  keywordLocation(ve),
			Message:          ve.ErrorKind.LocalizedString(printer),
		})
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, out)
	}
}

func keywordLocation(ve *jsonschema.ValidationError) string {
	loc := ""
	if i := strings.IndexByte(ve.SchemaURL, '#'); i >= 0 {
		loc = ve.SchemaURL[i+1:]
	}
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		loc += pointer(kw)
	}
	return loc
}

func pointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteByte('/')
		tok = strings.ReplaceAll(tok, "~", "~0")
		sb.WriteString(strings.ReplaceAll(tok, "/", "~1"))
	}
	return sb.String()
}
