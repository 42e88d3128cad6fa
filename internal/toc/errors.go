package toc

import (
	"fmt"
)

// Kind classifies a toc failure.
type Kind int

const (
	ConfigurationError Kind = iota + 1
	SelectorNotFoundError
	NoHeadingsFoundError
)

func (k Kind) String() string {
	switch k {
	case ConfigurationError:
		return "ConfigurationError"
	case SelectorNotFoundError:
		return "SelectorNotFoundError"
	case NoHeadingsFoundError:
		return "NoHeadingsFoundError"
	}
	return "UnknownError"
}

// Error is the single error type returned by this package. Use errors.Is with
// the sentinels below to test the kind, or errors.As to read the details.
type Error struct {
	Kind   Kind
	Option string // Offending option, for configuration errors
	Value  any    // Offending value, for configuration errors
	Msg    string
	Err    error
}

var (
	ErrConfiguration    = &Error{Kind: ConfigurationError}
	ErrSelectorNotFound = &Error{Kind: SelectorNotFoundError}
	ErrNoHeadingsFound  = &Error{Kind: NoHeadingsFoundError}
)

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Option != "" {
		msg = fmt.Sprintf("option %s: %s (got %#v)", e.Option, msg, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "toc: " + msg
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configError(option string, value any, format string, args ...any) *Error {
	return &Error{
		Kind:   ConfigurationError,
		Option: option,
		Value:  value,
		Msg:    fmt.Sprintf(format, args...),
	}
}
