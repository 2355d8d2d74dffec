package types

import (
	"errors"
	"fmt"
)

// ParseErrorKind classifies why a raw request could not be turned into a Request.
type ParseErrorKind int

const (
	Incomplete ParseErrorKind = iota
	Malformed
	InvalidEncoding
)

func (k ParseErrorKind) Error() string {
	switch k {
	case Incomplete:
		return "incomplete request"
	case Malformed:
		return "malformed request"
	case InvalidEncoding:
		return "request body is not valid UTF-8"
	default:
		return fmt.Sprintf("unknown parse error: %d", int(k))
	}
}

type ParseError struct {
	Kind   ParseErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

// Is lets errors.Is match a *ParseError against its bare kind.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(ParseErrorKind)
	return ok && k == e.Kind
}

func NewParseError(kind ParseErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

var (
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrUnsupportedMethod = errors.New("unsupported method")
	ErrNotFound          = errors.New("file not found")
)

// IOError is a filesystem failure other than a missing file. Its detail is
// for the operator log only.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// StatusFor maps an error from parsing, routing or file access to the status
// the client sees.
func StatusFor(err error) Status {
	var pe *ParseError
	var ke ParseErrorKind
	switch {
	case err == nil:
		return StatusOK
	case errors.As(err, &pe), errors.As(err, &ke):
		return StatusBadRequest
	case errors.Is(err, ErrPayloadTooLarge):
		return StatusPayloadTooLarge
	case errors.Is(err, ErrUnsupportedMethod):
		return StatusNotImplemented
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	default:
		return StatusInternalServerError
	}
}
