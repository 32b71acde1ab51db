package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat indicates the input bytes are not well-formed for the format.
	ErrFormat = errors.New("codec: malformed input")

	// ErrPayloadTooLarge is returned by Limit when the input exceeds MaxDecode.
	ErrPayloadTooLarge = errors.New("codec: payload too large")
)

// FormatError reports input that the carrier format could not parse, or a
// parsed tree holding values with no JSON-native equivalent.
type FormatError struct {
	Format string // format name, e.g. "json"
	Offset int64  // byte offset of the failure when known, else -1
	Err    error  // underlying parser error
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: malformed input at offset %d: %v", e.Format, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: malformed input: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}

func formatError(format string, offset int64, err error) error {
	return &FormatError{Format: format, Offset: offset, Err: err}
}
