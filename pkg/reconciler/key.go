package reconciler

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/library"
)

// DeriveKey builds a registry key from an author name.
//
// The name is decomposed (NFKD) with combining marks removed, lowercased,
// and every run of characters outside [a-z0-9._] becomes a single '-'.
// Leading and trailing dashes are trimmed and the result is capped at 64
// characters. Slugs shorter than two characters become "author". When the
// key is taken, "-2", "-3", ... is appended, shortening the base so the
// key stays within the limit. The result depends only on name and the
// keys already in reg.
func DeriveKey(name string, reg *library.Registry) library.AuthorKey {
	base := slug(name)
	if reg == nil || !reg.Has(library.AuthorKey(base)) {
		return library.AuthorKey(base)
	}
	for n := 2; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		stem := base
		if len(stem)+len(suffix) > constants.MaxAuthorKeyLength {
			stem = strings.TrimRight(stem[:constants.MaxAuthorKeyLength-len(suffix)], "-")
		}
		key := library.AuthorKey(stem + suffix)
		if !reg.Has(key) {
			return key
		}
	}
}

func slug(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	plain = cases.Lower(language.Und).String(plain)

	var sb strings.Builder
	dash := false
	for _, r := range plain {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			sb.WriteByte('-')
			dash = true
		}
	}

	s := strings.Trim(sb.String(), "-")
	if len(s) > constants.MaxAuthorKeyLength {
		s = strings.TrimRight(s[:constants.MaxAuthorKeyLength], "-")
	}
	if len(s) < constants.MinAuthorKeyLength {
		return constants.FallbackAuthorKey
	}
	return s
}
