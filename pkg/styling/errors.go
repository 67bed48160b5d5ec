package styling

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is reported when a stylesheet cannot parse a rule
	ErrSyntax = errors.New("syntax error")

	// ErrIndexSize is reported when a rule is inserted past the end of a stylesheet
	ErrIndexSize = errors.New("index out of range")
)

// StylesheetError is returned by a Sheet that rejected a rule
type StylesheetError struct {
	Rule  string
	Index int
	Err   error
}

func (e *StylesheetError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("insert rule %q at %d: %v", e.Rule, e.Index, e.Err)
}

// Unwrap exposes the underlying error.
func (e *StylesheetError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DecodeError describes a definition that does not match the
// [className, css, rtlCSS] wire shape
type DecodeError struct {
	Property string
	Message  string
	Err      error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Property != "" {
		return fmt.Sprintf("decode definition %q: %s", e.Property, e.Message)
	}
	return fmt.Sprintf("decode definitions: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
