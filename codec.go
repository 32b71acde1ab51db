package typedjson

import (
	"github.com/unkn0wn-root/typedjson/codec"
)

// Options configures a Codec. The zero value gives compact JSON and the
// default record registry.
type Options struct {
	// Format is the carrier. Defaults to codec.JSON with Indent.
	Format codec.Format
	// Records resolves record type names on decode. Defaults to DefaultRegistry().
	Records *Registry
	// Indent pretty-prints the default JSON format. Ignored when Format is set.
	Indent string
}

// Codec joins Serialize and Restore to a carrier format. It is immutable
// and safe for concurrent use.
type Codec struct {
	format  codec.Format
	records *Registry
}

var _ codec.Codec[any] = (*Codec)(nil)

func New(opts Options) *Codec {
	return &Codec{
		format:  coalesce[codec.Format](opts.Format, codec.JSON{Indent: opts.Indent}),
		records: coalesce(opts.Records, defaultRegistry),
	}
}

var defaultCodec = New(Options{})

func (c *Codec) Format() codec.Format { return c.format }
func (c *Codec) Records() *Registry   { return c.records }

// WithFormat returns a copy of c that uses f.
func (c *Codec) WithFormat(f codec.Format) *Codec {
	cp := *c
	cp.format = f
	return &cp
}

// Restore is the decode hook bound to c's registry.
func (c *Codec) Restore(obj map[string]any) (any, error) {
	return restore(obj, c.records)
}

// Encode serializes v and writes it with c's format. NaN and ±Inf fail with
// *UnsupportedTypeError when the format cannot carry them.
func (c *Codec) Encode(v any) ([]byte, error) {
	tree, err := encoder{finite: finiteOnly(c.format)}.encode(v)
	if err != nil {
		return nil, err
	}
	return c.format.Encode(tree)
}

func finiteOnly(f codec.Format) bool {
	fo, ok := f.(codec.FiniteOnly)
	return ok && fo.FiniteOnly()
}

// Decode parses b with c's format, restoring every tagged wrapper bottom-up.
func (c *Codec) Decode(b []byte) (any, error) {
	return c.format.Decode(b, c.Restore)
}

// Marshal returns the JSON text of v with type information preserved.
func Marshal(v any) ([]byte, error) {
	return defaultCodec.Encode(v)
}

// MarshalIndent is Marshal with pretty-printing.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return New(Options{Indent: indent}).Encode(v)
}

// Unmarshal parses JSON text produced by Marshal back into typed values.
// Objects that are not tagged wrappers come back as map[string]any; integers
// decode to int64 (uint64 above MaxInt64) and other numbers to float64.
func Unmarshal(data []byte) (any, error) {
	return defaultCodec.Decode(data)
}
