package diag

import (
	"errors"
	"fmt"

	"rcc/internal/source"
)

// ErrUnimplemented marks constructs the compiler recognizes but has no rules for.
var ErrUnimplemented = errors.New("unimplemented")

// Error is the single error carrier of the compiler core.
type Error struct {
	Msg     string
	Span    source.Span
	HasSpan bool
	Phase   Phase
	cause   error
}

// New builds an error from a message.
func New(msg string) *Error {
	return &Error{Msg: msg}
}

// Errorf builds an error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// At builds an error pointing at span.
func At(span source.Span, msg string) *Error {
	return &Error{Msg: msg, Span: span, HasSpan: true}
}

// Unimplemented reports a construct without resolution or lowering rules.
func Unimplemented(span source.Span, construct string) *Error {
	return &Error{
		Msg:     "unimplemented: " + construct,
		Span:    span,
		HasSpan: true,
		cause:   ErrUnimplemented,
	}
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.cause }

// WithSpan attaches span unless one is already set.
func (e *Error) WithSpan(span source.Span) *Error {
	if e.HasSpan {
		return e
	}
	e.Span = span
	e.HasSpan = true
	return e
}

// InPhase tags the error with the phase that produced it.
func (e *Error) InPhase(p Phase) *Error {
	if e.Phase == PhaseUnknown {
		e.Phase = p
	}
	return e
}

// Wrap attaches cause so errors.Is and errors.As see through the carrier.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// AsError extracts the *Error from a wrapped chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
