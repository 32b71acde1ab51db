package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack carries trees as MessagePack using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Decoding uses loose interface decoding so every integer arrives as
// int64/uint64 and every float as float64.
type Msgpack struct{}

var _ Format = Msgpack{}

func (Msgpack) Name() string        { return "msgpack" }
func (Msgpack) ContentType() string { return "application/msgpack" }

func (Msgpack) Encode(tree any) ([]byte, error) {
	norm, err := Normalize(tree)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	// Sorted keys keep the output stable for identical trees.
	enc.SetSortMapKeys(true)
	if err := enc.Encode(norm); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Msgpack) Decode(b []byte, hook Hook) (any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.UseLooseInterfaceDecoding(true)
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, formatError(c.Name(), -1, err)
	}
	return walkDecoded(c.Name(), v, hook)
}
