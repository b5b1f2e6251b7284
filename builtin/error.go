package builtin

import (
	"errors"
	"log/slog"
	"strings"
)

// Code discriminates the failures reported by a [*Builtin] call.
type Code int

const (
	CodeUnknown     Code = iota
	CodeArity            // too few arguments
	CodeType             // argument kind does not satisfy its signature
	CodeInvalidKind      // value outside the expression universe
	CodeSignature        // malformed signature declaration
)

// String returns the name of the error code.
func (c Code) String() string {
	switch c {
	case CodeArity:
		return "ArityError"
	case CodeType:
		return "TypeError"
	case CodeInvalidKind:
		return "InvalidKindError"
	case CodeSignature:
		return "SignatureError"
	default:
		return "Error"
	}
}

// Predefined errors. Use [errors.Is] to match any error of the same [Code].
var (
	ErrArity       = newError(CodeArity, "too few arguments")
	ErrType        = newError(CodeType, "invalid argument type")
	ErrInvalidKind = newError(CodeInvalidKind, "invalid value kind")
	ErrSignature   = newError(CodeSignature, "invalid signature")
)

// Error is the single error type returned by builtin invocations. It carries
// a [Code] for programmatic handling and implements [slog.LogValuer].
type Error struct {
	code  Code
	msg   string
	err   error
	attrs []slog.Attr
}

func newError(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Code returns the discriminant of e.
func (e *Error) Code() Code { return e.code }

// Error implements the error interface.
//
// Attributes named "builtin" prefix the message, and the attributes
// "position", "expected" and "found" are appended, so the text alone is
// enough to diagnose a failed call.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString("builtin: ")

	if name, ok := e.attr("builtin"); ok {
		sb.WriteString(name.String())
		sb.WriteString(": ")
	}

	sb.WriteString(e.msg)

	if pos, ok := e.attr("position"); ok {
		sb.WriteString(": argument ")
		sb.WriteString(pos.String())

		if exp, ok := e.attr("expected"); ok {
			sb.WriteString(" to be ")
			sb.WriteString(exp.String())
		}

		if found, ok := e.attr("found"); ok {
			sb.WriteString(", found ")
			sb.WriteString(found.String())
		}
	}

	if e.err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.code == e.code
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	attrs = append(attrs,
		slog.String("error", e.msg),
		slog.String("code", e.code.String()),
	)

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		code:  e.code,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to a copy of the error.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		code:  e.code,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// WithMessage returns a copy of the error with a different message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		code:  e.code,
		msg:   msg,
		err:   e.err,
		attrs: e.attrs,
	}
}

func (e *Error) attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}
