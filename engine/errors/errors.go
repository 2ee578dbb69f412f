// Package errors defines the four-kind error taxonomy this translator
// raises: Parsing, Unsupported, Unimplemented and Render (SPEC_FULL.md §7).
// The Error type follows the retrieval pack's httperror.Error shape
// (code/message/cause struct with Unwrap, per-kind constructors) rather than
// the teacher's bare sentinel-plus-%w style, because callers here need to
// recover a structured Kind and an optional remediation Hint, not just test
// error identity.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is the taxonomy discriminator (SPEC_FULL.md §7).
type Kind int

const (
	// Parsing errors bubble up from the external SQL parser; the parser's own
	// error value, with its source cursor position, is kept as Cause.
	Parsing Kind = iota
	// Unsupported marks syntactically valid SQL that falls outside
	// PostgREST's subset, or that violates a cross-clause invariant.
	Unsupported
	// Unimplemented marks a known statement kind not yet wired
	// (INSERT/UPDATE/DELETE/EXPLAIN) — distinct from Unsupported to signal
	// roadmap intent rather than a hard ceiling.
	Unimplemented
	// Render marks a valid request model that the chosen renderer cannot
	// express.
	Render
)

func (k Kind) String() string {
	switch k {
	case Parsing:
		return "parsing"
	case Unsupported:
		return "unsupported"
	case Unimplemented:
		return "unimplemented"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Error is the single error type this repo raises. Renderer is only
// meaningful when Kind == Render.
type Error struct {
	Kind     Kind
	Message  string
	Hint     string
	Renderer string
	Cause    error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg = fmt.Sprintf("%s (hint: %s)", msg, e.Hint)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap supports errors.Is/errors.As against the wrapped Cause.
func (e *Error) Unwrap() error { return e.Cause }

// WithHint returns a copy of e with Hint set, leaving e untouched. Used to
// attach a remediation hint after construction (e.g. from a lookup table
// keyed by the raw parser message).
func (e *Error) WithHint(hint string) *Error {
	cp := *e
	cp.Hint = hint
	return &cp
}

// ParsingError wraps a raw parser failure.
func ParsingError(cause error) *Error {
	return &Error{Kind: Parsing, Message: sentenceCase(cause.Error()), Cause: cause}
}

// Unsupportedf builds an Unsupported error from a format string.
func Unsupportedf(format string, args ...any) *Error {
	return &Error{Kind: Unsupported, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedHintf builds an Unsupported error carrying a remediation hint.
func UnsupportedHintf(hint string, format string, args ...any) *Error {
	return &Error{Kind: Unsupported, Message: fmt.Sprintf(format, args...), Hint: hint}
}

// Unimplementedf builds an Unimplemented error from a format string.
func Unimplementedf(format string, args ...any) *Error {
	return &Error{Kind: Unimplemented, Message: fmt.Sprintf(format, args...)}
}

// Renderf builds a Render error naming the renderer that could not express
// the model.
func Renderf(renderer string, format string, args ...any) *Error {
	return &Error{Kind: Render, Renderer: renderer, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err (or anything it wraps) is a *Error of the given
// Kind. Exists mainly so callers can write errors.Is(err, errors.Unsupported)
// without unwrapping by hand.
func Is(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func sentenceCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - ('a' - 'A')
	}
	return string(r)
}
