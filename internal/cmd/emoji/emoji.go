// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols shared by every command.
const (
	// Success marks a completed step or a passing check.
	Success = "✓"

	// Error marks a failed step or a broken rule.
	Error = "✗"

	// Unchanged marks a file that already had the expected content.
	Unchanged = "-"
)
