package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR carries trees using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when you need byte-for-byte stable outputs (e.g., hashing/content addressing).
// Otherwise PreferredUnsortedEncOptions are used (sensible defaults).
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Format = CBOR{}

// NewCBOR constructs a CBOR format.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions (smaller/faster defaults).
//
// Maps decode as map[string]any so objects reach the hook directly.
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}

	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (CBOR) Name() string        { return "cbor" }
func (CBOR) ContentType() string { return "application/cbor" }

// Encode encodes tree using the configured EncMode.
func (c CBOR) Encode(tree any) ([]byte, error) {
	norm, err := Normalize(tree)
	if err != nil {
		return nil, err
	}
	return c.enc.Marshal(norm)
}

// Decode decodes b using the configured DecMode, then walks the result.
func (c CBOR) Decode(b []byte, hook Hook) (any, error) {
	var v any
	if err := c.dec.Unmarshal(b, &v); err != nil {
		return nil, formatError(c.Name(), -1, err)
	}
	return walkDecoded(c.Name(), v, hook)
}
