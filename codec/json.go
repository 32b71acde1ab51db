package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

// JSON is the primary text format. The zero value is ready to use.
//
// Decode is a recursive-descent parser over encoding/json tokens: each object
// is handed to the hook as soon as its closing brace is read, so nested
// objects are always transformed before their parents.
type JSON struct {
	// Indent, when non-empty, pretty-prints Encode output with this indent.
	Indent string
}

var _ Format = JSON{}

func (JSON) Name() string        { return "json" }
func (JSON) ContentType() string { return "application/json" }

// FiniteOnly is true: JSON text has no NaN or Infinity literals.
func (JSON) FiniteOnly() bool { return true }

func (c JSON) Encode(tree any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.Indent != "" {
		enc.SetIndent("", c.Indent)
	}
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}
	// Encoder terminates every value with a newline; keep the text bare.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (c JSON) Decode(b []byte, hook Hook) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	v, err := parseJSONValue(dec, hook)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after top-level value")
		}
		return nil, formatError(c.Name(), dec.InputOffset(), err)
	}
	return v, nil
}

// hookError marks errors produced by the hook so they are not reported as
// syntax failures.
type hookError struct{ err error }

func (e hookError) Error() string { return e.err.Error() }

func parseJSONValue(dec *json.Decoder, hook Hook) (any, error) {
	v, err := parseJSON(dec, hook)
	if err != nil {
		var he hookError
		if errors.As(err, &he) {
			return nil, he.err
		}
		var fe *FormatError
		if errors.As(err, &fe) {
			return nil, err
		}
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, formatError("json", dec.InputOffset(), err)
	}
	return v, nil
}

func parseJSON(dec *json.Decoder, hook Hook) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			list := []any{}
			for dec.More() {
				v, err := parseJSON(dec, hook)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil { // ']'
				return nil, err
			}
			return list, nil
		case '{':
			obj := map[string]any{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, errors.New("object key is not a string")
				}
				v, err := parseJSON(dec, hook)
				if err != nil {
					return nil, err
				}
				obj[key] = v
			}
			if _, err := dec.Token(); err != nil { // '}'
				return nil, err
			}
			if hook == nil {
				return obj, nil
			}
			out, err := hook(obj)
			if err != nil {
				return nil, hookError{err}
			}
			return out, nil
		default:
			return nil, errors.New("unexpected delimiter " + t.String())
		}
	case json.Number:
		n, err := parseNumber(string(t))
		if err != nil {
			return nil, formatError("json", dec.InputOffset(), err)
		}
		return n, nil
	default: // string, bool, nil
		return t, nil
	}
}

// parseNumber keeps integers integral: int64 when it fits, uint64 above
// MaxInt64, float64 for everything else.
func parseNumber(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}
