package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInteger marks a tunable that is not an unsigned 16-bit integer.
	ErrInvalidInteger = errors.New("invalid integer")
	// ErrInvalidFloat marks a numeric base value that is not a float.
	ErrInvalidFloat = errors.New("invalid float")
)

// ParseError reports the configuration key that failed to parse.
type ParseError struct {
	// Key is the configuration key whose value was rejected.
	Key string
	// Kind is ErrInvalidInteger or ErrInvalidFloat.
	Kind error
	// Err is the underlying parse failure.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Key, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the parse failure to errors.Is.
func (e *ParseError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
