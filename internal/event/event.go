// Package event reads GitHub issue event payloads that carry submissions
// and renders the failure comment posted back on the issue.
package event

import (
	"fmt"
	"os"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/errors"
)

// Accepted event and actions.
const (
	NameIssues   = "issues"
	ActionOpened = "opened"
	ActionEdited = "edited"
)

// Issue is the subset of a GitHub issue the pipeline needs.
type Issue struct {
	Number int64    `json:"number" yaml:"number"`
	Title  string   `json:"title" yaml:"title"`
	Body   string   `json:"body" yaml:"body"`
	URL    string   `json:"url" yaml:"url"`
	Labels []string `json:"labels" yaml:"labels"`
}

// Submission is an issue event that may carry a submission.
type Submission struct {
	Name   string `json:"event" yaml:"event"`
	Action string `json:"action" yaml:"action"`
	Issue  *Issue `json:"issue,omitempty" yaml:"issue,omitempty"`
}

// Parse reads an event payload. name is the event name, which GitHub
// passes separately from the payload.
func Parse(name string, payload []byte) (*Submission, error) {
	if !gjson.ValidBytes(payload) {
		return nil, &errors.ParseError{Format: "json", Message: "event payload is not valid JSON"}
	}
	doc := gjson.ParseBytes(payload)

	s := &Submission{Name: name, Action: doc.Get("action").String()}
	if issue := doc.Get("issue"); issue.IsObject() {
		s.Issue = &Issue{
			Number: issue.Get("number").Int(),
			Title:  issue.Get("title").String(),
			Body:   issue.Get("body").String(),
			URL:    issue.Get("html_url").String(),
		}
		issue.Get("labels.#.name").ForEach(func(_, v gjson.Result) bool {
			s.Issue.Labels = append(s.Issue.Labels, v.String())
			return true
		})
	}
	return s, nil
}

// Load reads and parses the event payload at path.
func Load(name, path string) (*Submission, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	s, err := Parse(name, payload)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, err
	}
	return s, nil
}

// Check verifies the event is an opened or edited issue with a body and
// the submission label. An empty label defaults to the standard one.
func (s *Submission) Check(label string) error {
	if label == "" {
		label = constants.SubmissionLabel
	}
	if s.Name != NameIssues {
		return errors.NewValidationError("event", s.Name, fmt.Sprintf("Incorrect event: %s", s.Name))
	}
	if s.Action != ActionOpened && s.Action != ActionEdited {
		return errors.NewValidationError("action", s.Action, fmt.Sprintf("Incorrect action: %s", s.Action))
	}
	if s.Issue == nil {
		return errors.NewValidationError("issue", nil, "Issue field not found")
	}
	if s.Issue.Body == "" {
		return errors.NewValidationError("issue.body", nil, "No comment body found")
	}
	if !slices.Contains(s.Issue.Labels, label) {
		return errors.NewValidationError("issue.labels", s.Issue.Labels, fmt.Sprintf("Submission label %q not found", label))
	}
	return nil
}

// FailureComment renders the comment posted on a submission that failed.
func FailureComment(err error) string {
	return constants.FailureCommentPrefix + "\n\n" + Message(err)
}

// Message returns the human-readable text of err. Event check failures
// are reported by their message alone.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if ve, ok := err.(*errors.ValidationError); ok && ve.Message != "" {
		return ve.Message
	}
	return err.Error()
}
