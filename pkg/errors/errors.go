// Package errors provides custom error types for the curator system.
// These errors enable better error handling, programmatic error checking,
// and human-readable failure reports for submission authors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the curator system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoCodeBlocks indicates that a submission carried no decodable fenced blocks
	ErrNoCodeBlocks = errors.New("No code blocks found")

	// ErrAuthorKeyNotFound indicates that an author key reference has no registry entry
	ErrAuthorKeyNotFound = errors.New("Author key not found")

	// ErrAuthorMustHaveName indicates that a new author was submitted without a name
	ErrAuthorMustHaveName = errors.New("Author must have a name")

	// ErrUnclassifiedBlock indicates that a block matched neither the library nor the author shape
	ErrUnclassifiedBlock = errors.New("unclassified block")
)

// ValidationError represents a validation failure on a single field
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Violation is a single schema rule broken by a document.
type Violation struct {
	// InstanceLocation is a JSON pointer into the validated document.
	InstanceLocation string `json:"instance_location" yaml:"instance_location"`
	// KeywordLocation is a JSON pointer into the schema.
	KeywordLocation string `json:"keyword_location" yaml:"keyword_location"`
	Message         string `json:"message" yaml:"message"`
}

// String formats the violation for humans.
func (v Violation) String() string {
	loc := v.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, v.Message)
}

// SchemaValidationError reports every violation found when a document was
// checked against the schema. Persistence must abort when one is returned.
type SchemaValidationError struct {
	Subject    string
	Violations []Violation
}

// Error implements the error interface
func (e *SchemaValidationError) Error() string {
	subject := e.Subject
	if subject == "" {
		subject = "document"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed schema validation with %d violation(s)", subject, len(e.Violations))
	for _, v := range e.Violations {
		sb.WriteString("\n  - ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

// Is implements errors.Is support
func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ReferentialError indicates a listing references an author key that is not
// present in the author registry.
type ReferentialError struct {
	Listing string
	Key     string
}

// Error implements the error interface
func (e *ReferentialError) Error() string {
	if e.Listing != "" {
		return fmt.Sprintf("Author key %q not found (referenced by %q).", e.Key, e.Listing)
	}
	return fmt.Sprintf("Author key %q not found.", e.Key)
}

// Is implements errors.Is support
func (e *ReferentialError) Is(target error) bool {
	return target == ErrNotFound || target == ErrAuthorKeyNotFound
}

// NewReferentialError creates a new ReferentialError
func NewReferentialError(listing, key string) *ReferentialError {
	return &ReferentialError{Listing: listing, Key: key}
}

// ReconciliationError indicates an author candidate could not be matched or created.
type ReconciliationError struct {
	Candidate string
	Err       error
}

// Error implements the error interface
func (e *ReconciliationError) Error() string {
	if e.Candidate != "" {
		return fmt.Sprintf("%v (candidate: %s)", e.Err, e.Candidate)
	}
	return e.Err.Error()
}

// Unwrap implements errors.Unwrap
func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ReconciliationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnclassifiedBlockError indicates a submitted block decoded fine but matched
// no known record shape.
type UnclassifiedBlockError struct {
	Block   int
	Reasons []string
}

// Error implements the error interface
func (e *UnclassifiedBlockError) Error() string {
	msg := fmt.Sprintf("code block %d is neither a library nor an author", e.Block+1)
	if len(e.Reasons) > 0 {
		msg += ": " + strings.Join(e.Reasons, "; ")
	}
	return msg
}

// Is implements errors.Is support
func (e *UnclassifiedBlockError) Is(target error) bool {
	return target == ErrUnclassifiedBlock || target == ErrInvalidInput
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "text"
	File    string
	Block   int // 1-based fenced block index, 0 when not applicable
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Block > 0 {
		return fmt.Sprintf("%s parse error in code block %d: %s", e.Format, e.Block, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	if e.Format == "" {
		return e.Message
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "save", "compile", "sync"
	Resource  string // "dataset", "schema", "tags", "validator"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsReferential checks if an error is a ReferentialError
func IsReferential(err error) bool {
	var re *ReferentialError
	return errors.As(err, &re)
}

// IsReconciliation checks if an error is a ReconciliationError
func IsReconciliation(err error) bool {
	var re *ReconciliationError
	return errors.As(err, &re)
}

// IsSchemaValidation checks if an error is a SchemaValidationError
func IsSchemaValidation(err error) bool {
	var se *SchemaValidationError
	return errors.As(err, &se)
}

// IsUnclassified checks if an error is an UnclassifiedBlockError
func IsUnclassified(err error) bool {
	return errors.Is(err, ErrUnclassifiedBlock)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: err.Error(), Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// As is re-exported so callers need only one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is re-exported so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
