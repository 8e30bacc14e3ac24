package docs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
)

// Readme renders the human-readable listing of a dataset: a table of
// libraries sorted by title and a table of registered authors.
func Readme(ds *library.Dataset) (string, error) {
	ds.Normalize()
	m := NewMarkdownBuffer()

	m.H1(ds.Title).LF()
	if ds.Description != "" {
		m.PlainText(ds.Description).LF()
	}

	libs := slices.Clone(ds.Libraries)
	slices.SortStableFunc(libs, func(a, b library.Library) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})

	m.H2(fmt.Sprintf("Libraries (%d)", len(libs))).LF()
	rows := make([][]string, 0, len(libs))
	for _, lib := range libs {
		name := link(cell(lib.Title), lib.URL)
		if lib.GitHubURL != "" && lib.GitHubURL != lib.URL {
			name += " (" + link("GitHub", lib.GitHubURL) + ")"
		}
		rows = append(rows, []string{
			name,
			orDash(cell(lib.Description)),
			orDash(authorNames(ds.Authors, lib.Authors)),
			orDash(strings.Join(lib.Tags, ", ")),
			orDash(strings.Join(lib.Compatibility, ", ")),
		})
	}
	m.Table([]string{"Library", "Description", "Authors", "Tags", "GameMaker"}, rows).LF()

	m.H2(fmt.Sprintf("Authors (%d)", ds.Authors.Len())).LF()
	rows = make([][]string, 0, ds.Authors.Len())
	ds.Authors.ForEach(func(key library.AuthorKey, a *library.Author) bool {
		count := 0
		for i := range ds.Libraries {
			if ds.Libraries[i].HasAuthorKey(key) {
				count++
			}
		}
		rows = append(rows, []string{
			link(cell(displayName(key, a)), profileURL(a)),
			orDash(strings.Join(profiles(a), " · ")),
			orDash(cell(strings.Join(a.Affiliations, ", "))),
			fmt.Sprint(count),
		})
		return true
	})
	m.Table([]string{"Author", "Profiles", "Affiliations", "Libraries"}, rows)

	if err := m.Build(); err != nil {
		return "", errors.WrapResource("compile", "readme", "", err)
	}
	return m.String(), nil
}

func authorNames(reg *library.Registry, refs []library.AuthorRef) string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if !ref.IsKey() {
			names = append(names, link(cell(ref.Inline.Name), profileURL(ref.Inline)))
			continue
		}
		if a, ok := reg.Get(ref.Key); ok {
			names = append(names, link(cell(displayName(ref.Key, a)), profileURL(a)))
		}
	}
	return strings.Join(names, ", ")
}

func displayName(key library.AuthorKey, a *library.Author) string {
	if a.Name != "" {
		return a.Name
	}
	return key.String()
}

// profileURL picks the most useful link for an author.
func profileURL(a *library.Author) string {
	switch {
	case a.Website != "":
		if strings.Contains(a.Website, "://") {
			return a.Website
		}
		return "https://" + a.Website
	case a.GitHub != "":
		return "https://github.com/" + a.GitHub
	case a.Twitter != "":
		return "https://twitter.com/" + strings.TrimPrefix(a.Twitter, "@")
	}
	return ""
}

func profiles(a *library.Author) []string {
	var out []string
	if a.GitHub != "" {
		out = append(out, link("GitHub", "https://github.com/"+a.GitHub))
	}
	if a.Twitter != "" {
		out = append(out, link("Twitter", "https://twitter.com/"+strings.TrimPrefix(a.Twitter, "@")))
	}
	if a.Discord != "" {
		out = append(out, "Discord: "+cell(a.Discord))
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return EmDash
	}
	return s
}
