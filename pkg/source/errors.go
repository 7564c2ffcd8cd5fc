package source

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProtocol indicates a workspace: specifier outside a
	// workspace project context.
	ErrUnsupportedProtocol = errors.New("unsupported protocol")

	// ErrInvalidRange indicates a specifier that should be a semver range
	// but does not parse as one.
	ErrInvalidRange = errors.New("invalid semver range")

	// ErrMalformedSpecifier indicates a specifier that matches no known
	// protocol shape.
	ErrMalformedSpecifier = errors.New("malformed specifier")
)

// ParseError reports a single specifier that failed to parse. Parse
// failures are per-specifier and recoverable; callers collect them as
// diagnostics and continue with the rest of the manifest.
type ParseError struct {
	Spec   string
	Reason error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse specifier %q: %v", e.Spec, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Reason }

func newParseError(spec string, reason error) *ParseError {
	return &ParseError{Spec: spec, Reason: reason}
}
