package validator

import (
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/schema"
)

const typesHeader = `/* tslint:disable */
/**
 * This file was automatically generated by curator from the JSON Schema.
 * DO NOT MODIFY IT BY HAND. Instead, modify the source JSON Schema file,
 * and run ` + "`curator compile`" + ` to regenerate this file.
 */
`

// GenerateTypes renders TypeScript declarations for the root document and
// every definition of the schema. Titled subschemas become named types;
// non-object types are emitted as aliases ahead of the interfaces.
func GenerateTypes(s *schema.Schema) ([]byte, error) {
	doc := gjson.ParseBytes(s.Raw())
	rootName := typeName(doc.Get("title").String())
	if rootName == "" {
		return nil, &errors.ValidationError{Field: "title", Message: "schema root needs a title to name its type"}
	}

	g := &typeGen{defs: doc.Get("definitions"), seen: make(map[string]bool)}
	g.register(rootName, doc)
	g.defs.ForEach(func(k, _ gjson.Result) bool {
		g.ref(k.String())
		return true
	})

	var aliases, interfaces []string
	for i := 0; i < len(g.queue); i++ {
		n := g.queue[i]
		if isObject(n.schema) {
			interfaces = append(interfaces, g.renderInterface(n))
		} else {
			aliases = append(aliases, g.renderAlias(n))
		}
	}

	var sb strings.Builder
	sb.WriteString(typesHeader)
	sb.WriteString("\n")
	for _, a := range aliases {
		sb.WriteString(a)
	}
	sb.WriteString("\n")
	for _, i := range interfaces {
		sb.WriteString(i)
	}
	return []byte(sb.String()), nil
}

type namedType struct {
	name   string
	schema gjson.Result
}

type typeGen struct {
	defs  gjson.Result
	queue []namedType
	seen  map[string]bool
}

func (g *typeGen) register(name string, s gjson.Result) {
	if g.seen[name] {
		return
	}
	g.seen[name] = true
	g.queue = append(g.queue, namedType{name: name, schema: s})
}

// typeOf returns the type expression for a subschema, registering named
// types as they are found.
func (g *typeGen) typeOf(s gjson.Result) string {
	if ref := s.Get(`\$ref`); ref.Exists() {
		return g.ref(strings.TrimPrefix(ref.String(), "#/definitions/"))
	}
	if title := s.Get("title").String(); title != "" {
		name := typeName(title)
		g.register(name, s)
		return name
	}
	return g.inline(s)
}

// ref names the definition stored under key.
func (g *typeGen) ref(key string) string {
	def := g.defs.Get(escapePath(key))
	name := typeName(def.Get("title").String())
	if name == "" {
		name = typeName(key)
	}
	g.register(name, def)
	return name
}

func (g *typeGen) inline(s gjson.Result) string {
	if enum := s.Get("enum"); enum.IsArray() {
		var parts []string
		enum.ForEach(func(_, v gjson.Result) bool {
			parts = append(parts, v.Raw)
			return true
		})
		return strings.Join(parts, " | ")
	}
	for _, kw := range []string{"oneOf", "anyOf"} {
		if alts := s.Get(kw); alts.IsArray() {
			var parts []string
			alts.ForEach(func(_, alt gjson.Result) bool {
				parts = append(parts, g.typeOf(alt))
				return true
			})
			return strings.Join(parts, " | ")
		}
	}
	switch s.Get("type").String() {
	case "string":
		return "string"
	case "number", "integer":
		return "number"
	case "boolean":
		return "boolean"
	case "null":
		return "null"
	case "array":
		item := "unknown"
		if items := s.Get("items"); items.Exists() {
			item = g.typeOf(items)
		}
		if strings.Contains(item, " | ") {
			item = "(" + item + ")"
		}
		return item + "[]"
	case "object":
		return "{\n    [k: string]: unknown;\n  }"
	}
	return "unknown"
}

func (g *typeGen) renderAlias(n namedType) string {
	var sb strings.Builder
	writeDoc(&sb, "", n.schema.Get("description").String())
	sb.WriteString("export type " + n.name + " = " + g.inline(n.schema) + ";\n")
	return sb.String()
}

func (g *typeGen) renderInterface(n namedType) string {
	var sb strings.Builder
	writeDoc(&sb, "", n.schema.Get("description").String())
	sb.WriteString("export interface " + n.name + " {\n")

	required := make(map[string]bool)
	n.schema.Get("required").ForEach(func(_, v gjson.Result) bool {
		required[v.String()] = true
		return true
	})

	n.schema.Get("properties").ForEach(func(k, prop gjson.Result) bool {
		if prop.Get("title").String() == "" && !prop.Get(`\$ref`).Exists() {
			writeDoc(&sb, "  ", prop.Get("description").String())
		}
		opt := "?"
		if required[k.String()] {
			opt = ""
		}
		sb.WriteString("  " + propertyName(k.String()) + opt + ": " + g.typeOf(prop) + ";\n")
		return true
	})

	var patterns []string
	n.schema.Get("patternProperties").ForEach(func(_, prop gjson.Result) bool {
		patterns = append(patterns, g.typeOf(prop))
		return true
	})
	if len(patterns) > 0 {
		sb.WriteString("  [k: string]: " + strings.Join(patterns, " | ") + ";\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

func isObject(s gjson.Result) bool {
	return s.Get("type").String() == "object" ||
		s.Get("properties").Exists() ||
		s.Get("patternProperties").Exists()
}

func writeDoc(sb *strings.Builder, indent, text string) {
	if text == "" {
		return
	}
	sb.WriteString(indent + "/**\n")
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(strings.TrimRight(indent+" * "+line, " ") + "\n")
	}
	sb.WriteString(indent + " */\n")
}

// typeName turns a title or definition key into an exported type name.
func typeName(s string) string {
	var sb strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func propertyName(name string) string {
	for i, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return quote(name)
	}
	return name
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func escapePath(s string) string {
	return strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`).Replace(s)
}
