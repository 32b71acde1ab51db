package typedjson

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/typedjson/codec"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnsupportedType indicates the encoder reached a value of no known variant.
	ErrUnsupportedType = errors.New("typedjson: unsupported type")

	// ErrMalformedTag indicates a reserved tag whose payload cannot be restored.
	ErrMalformedTag = errors.New("typedjson: malformed tag")

	// ErrTextFormat indicates the input bytes are not well-formed for the carrier format.
	ErrTextFormat = codec.ErrFormat

	// ErrDuplicateRecord indicates a record type name is already registered.
	ErrDuplicateRecord = errors.New("typedjson: record type already registered")

	// ErrInvalidRecord indicates a record registration with a bad name, field list or factory.
	ErrInvalidRecord = errors.New("typedjson: invalid record definition")

	// ErrInvalidArray indicates array construction with a bad dtype, shape or element.
	ErrInvalidArray = errors.New("typedjson: invalid array")
)

// TextFormatError reports malformed input bytes. It comes from the carrier
// format, never from the tag layer.
type TextFormatError = codec.FormatError

// UnsupportedTypeError is returned by Serialize for a value of no supported
// variant. Nothing is emitted for the whole call.
type UnsupportedTypeError struct {
	Type   string // Go type of the offending value, e.g. "chan int"
	Path   string // location in the input, e.g. "/2/x"; empty at the top level
	Reason string // optional detail
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("typedjson: type %s not serializable", e.Type)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// MalformedTagError is returned by Restore when a reserved tag carries a
// payload that cannot be turned back into its variant.
type MalformedTagError struct {
	Tag     string // the reserved key, e.g. TagRecord
	Problem string // what is missing or mismatched
	Cause   error  // optional underlying error (record factory, array coercion)
}

func (e *MalformedTagError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("typedjson: malformed %q payload: %s: %v", e.Tag, e.Problem, e.Cause)
	}
	return fmt.Sprintf("typedjson: malformed %q payload: %s", e.Tag, e.Problem)
}

func (e *MalformedTagError) Unwrap() []error {
	errs := make([]error, 0, 2)
	errs = append(errs, ErrMalformedTag)
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func malformed(tag, problem string, cause error) error {
	return &MalformedTagError{Tag: tag, Problem: problem, Cause: cause}
}

func unsupported(v any, reason string) error {
	return &UnsupportedTypeError{Type: fmt.Sprintf("%T", v), Reason: reason}
}
