package typedjson

import "encoding/json"

// Kind is the variant a value belongs to. The constants are declared in the
// priority order the encoder matches them in.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindList       // []any
	KindOrderedMap // *OrderedMap
	KindRecord     // Record
	KindObject     // map[string]any
	KindMap        // *Map
	KindTuple      // Tuple
	KindSet        // *Set
	KindArray      // *Array
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindNull:       "null",
	KindBool:       "bool",
	KindNumber:     "number",
	KindString:     "string",
	KindList:       "list",
	KindOrderedMap: "ordered-map",
	KindRecord:     "record",
	KindObject:     "object",
	KindMap:        "map",
	KindTuple:      "tuple",
	KindSet:        "set",
	KindArray:      "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// KindOf classifies v. Nil *OrderedMap, *Map, *Set, *Array pointers and nil
// Record pointers are KindNull.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindList
	case *OrderedMap:
		if t == nil {
			return KindNull
		}
		return KindOrderedMap
	case *DynamicRecord:
		if t == nil {
			return KindNull
		}
		return KindRecord
	case Record:
		if isNilRecord(t) {
			return KindNull
		}
		return KindRecord
	case map[string]any:
		return KindObject
	case *Map:
		if t == nil {
			return KindNull
		}
		return KindMap
	case Tuple:
		return KindTuple
	case *Set:
		if t == nil {
			return KindNull
		}
		return KindSet
	case *Array:
		if t == nil {
			return KindNull
		}
		return KindArray
	default:
		return KindInvalid
	}
}
