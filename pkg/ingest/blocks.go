package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/errors"
)

// Both fences must open a line. The content may be empty.
var fencePattern = regexp.MustCompile("(?ms)^```" + constants.FencedBlockLanguage + `[ \t]*\r?\n(.*?)^` + "```" + `[ \t]*\r?$`)

// ExtractBlocks returns the contents of every ```yaml fenced block in text,
// in order of appearance.
func ExtractBlocks(text string) []string {
	matches := fencePattern.FindAllStringSubmatch(text, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, strings.TrimRight(m[1], "\r\n"))
	}
	return blocks
}

// decodeBlock parses one block as YAML. index is 0-based.
func decodeBlock(index int, content string) (any, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(content), &v); err != nil {
		return nil, &errors.ParseError{
			Format:  "yaml",
			Block:   index + 1,
			Message: yaml.FormatError(err, false, true),
			Err:     err,
		}
	}
	return v, nil
}

// prune drops nulls, blank strings and empty collections, trims strings
// and renders scalars as strings so that `- 8` reads as "8". The second
// result is false when nothing is left.
func prune(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			if p, ok := prune(item); ok {
				out = append(out, p)
			}
		}
		return out, len(out) > 0
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			if p, ok := prune(item); ok {
				out[k] = p
			}
		}
		return out, len(out) > 0
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			if p, ok := prune(item); ok {
				out[fmt.Sprint(k)] = p
			}
		}
		return out, len(out) > 0
	default:
		s := strings.TrimSpace(fmt.Sprint(t))
		return s, s != ""
	}
}
