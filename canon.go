package typedjson

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

var canonEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Canonical returns the deterministic CBOR (RFC 8949 core deterministic)
// encoding of v's canonical tree. Two values with equal canonical bytes are
// the same value: Set members and Map pairs are sorted, integral floats are
// folded onto integers, and OrderedMap, list and Tuple order is kept.
func Canonical(v any) ([]byte, error) {
	tree, err := encoder{canonical: true}.encode(v)
	if err != nil {
		return nil, err
	}
	return canonEncMode.Marshal(tree)
}

// Equal reports whether a and b are the same value under each variant's
// natural equality. Values that cannot be serialized are never equal.
func Equal(a, b any) bool {
	ca, err := Canonical(a)
	if err != nil {
		return false
	}
	cb, err := Canonical(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ca, cb)
}

// Fingerprint is the BLAKE2b-256 digest of Canonical(v). It is stable across
// Set and Map iteration order and across carrier formats.
func Fingerprint(v any) ([32]byte, error) {
	c, err := Canonical(v)
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(c), nil
}

func canonicalKey(k any) (string, error) {
	b, err := Canonical(k)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
