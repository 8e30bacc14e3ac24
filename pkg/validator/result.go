package validator

import (
	"fmt"

	"github.com/agentstation/curator/pkg/errors"
)

// Result is the outcome of validating one value.
type Result struct {
	Subject    string
	Violations []errors.Violation
}

// Valid returns true if no rule was violated.
func (r *Result) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns a *errors.SchemaValidationError carrying every violation, or
// nil when the value is valid.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &errors.SchemaValidationError{Subject: r.Subject, Violations: r.Violations}
}

// Messages returns the violations formatted one per entry.
func (r *Result) Messages() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.String())
	}
	return out
}

// String returns a string representation of the result.
func (r *Result) String() string {
	if r.Valid() {
		return "Validation passed"
	}
	return fmt.Sprintf("Validation failed with %d errors", len(r.Violations))
}
