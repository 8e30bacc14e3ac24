package validator

import (
	"github.com/agentstation/curator/pkg/errors"
)

type options struct {
	typesPath string
}

func defaultOptions() *options {
	return &options{}
}

// Option is a function that configures a Validator.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithTypesPath writes the TypeScript declarations for the schema to path
// when the validator is compiled.
func WithTypesPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "typesPath",
				Message: "cannot be empty",
			}
		}
		o.typesPath = path
		return nil
	}
}
