package schema

import (
	"os"
	"slices"
	"strings"

	"github.com/agentstation/curator/internal/fileutil"
	"github.com/agentstation/curator/pkg/errors"
)

// CanonicalTags splits a newline-delimited tag list, trims every entry,
// drops blanks and duplicates and sorts the result.
func CanonicalTags(content string) []string {
	var tags []string
	for _, line := range strings.Split(content, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// FormatTags renders tags in the canonical file form: one per line, no
// trailing newline.
func FormatTags(tags []string) []byte {
	return []byte(strings.Join(tags, "\n"))
}

// LoadTags reads the tag list at path, rewrites it in canonical form when
// it is not already, and returns the tags. Calling it again on its own
// output changes nothing.
func LoadTags(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	tags := CanonicalTags(string(data))
	if _, err := fileutil.WriteIfChanged(path, FormatTags(tags)); err != nil {
		return nil, err
	}
	return tags, nil
}
