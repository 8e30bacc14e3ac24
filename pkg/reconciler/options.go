package reconciler

import (
	"github.com/agentstation/curator/pkg/errors"
)

// options configures a reconciler.
type options struct {
	matcher Matcher
}

func defaultOptions() *options {
	return &options{
		matcher: FieldMatcher{},
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithMatcher sets the rule deciding whether a candidate is an existing author.
func WithMatcher(m Matcher) Option {
	return func(o *options) error {
		if m == nil {
			return &errors.ValidationError{
				Field:   "matcher",
				Message: "cannot be nil",
			}
		}
		o.matcher = m
		return nil
	}
}
