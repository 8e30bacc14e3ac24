package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/curator/internal/cmd/emoji"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/ingest"
)

// ReportData lays out an ingestion report as one row per change. Wide
// output adds the changed author fields.
func ReportData(r *ingest.Report, wide bool) Data {
	headers := []string{"Kind", "Subject", "Outcome"}
	if wide {
		headers = append(headers, "Details")
	}

	rows := make([][]string, 0, len(r.Blocks)+len(r.Authors)+len(r.Listings))
	for _, b := range r.Blocks {
		row := []string{"block " + strconv.Itoa(b.Index+1), b.Summary, b.Kind.String()}
		if wide {
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	for _, a := range r.Authors {
		row := []string{"author", a.Key.String(), a.Outcome.String()}
		if wide {
			row = append(row, strings.Join(a.Changed, ", "))
		}
		rows = append(rows, row)
	}
	for _, l := range r.Listings {
		row := []string{"library", l.Title, l.Outcome.String()}
		if wide {
			row = append(row, l.URL)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// ViolationsData lays out schema violations one per row.
func ViolationsData(violations []errors.Violation, wide bool) Data {
	headers := []string{"", "Location", "Message"}
	if wide {
		headers = append(headers, "Rule")
	}

	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		loc := v.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		row := []string{emoji.Error, loc, v.Message}
		if wide {
			row = append(row, v.KeywordLocation)
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft}[:len(headers)],
	}
}
