// Package codec moves JSON-native trees (nil, bool, numbers, strings, []any,
// map[string]any) to and from bytes.
//
// Formats know nothing about typed wrappers. Decoding takes a Hook that is
// applied to every object bottom-up, innermost first, before the object is
// attached to its parent; the typedjson package passes its Restore there.
package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Hook transforms a decoded object. It is called once per object, children
// first. Returning the object unchanged is the identity path.
type Hook func(obj map[string]any) (any, error)

// Format is a carrier for JSON-native trees.
type Format interface {
	// Name is the short identifier recorded in framed blobs (e.g. "json").
	Name() string
	// ContentType returns the MIME type of the encoded bytes.
	ContentType() string
	// Encode writes a JSON-native tree.
	Encode(tree any) ([]byte, error)
	// Decode parses b, applying hook to every object bottom-up. A nil hook
	// leaves objects untouched.
	Decode(b []byte, hook Hook) (any, error)
}

// FiniteOnly is implemented by formats that cannot carry NaN or ±Inf.
type FiniteOnly interface {
	FiniteOnly() bool
}

var (
	formatsMu sync.RWMutex
	formats   = map[string]Format{}
)

func init() {
	for _, f := range []Format{JSON{}, Msgpack{}, MustCBOR(false), YAML{}, Protobuf{}, BSON{}} {
		Register(f)
	}
}

// Register makes f available to Lookup under f.Name(), replacing any
// previous format with that name.
func Register(f Format) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	formats[f.Name()] = f
}

// Lookup returns the registered format with the given name.
func Lookup(name string) (Format, error) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("codec: unknown format %q", name)
	}
	return f, nil
}

// Names lists the registered format names in sorted order.
func Names() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	out := make([]string, 0, len(formats))
	for n := range formats {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
