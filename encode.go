package typedjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Serialize converts v into a tree built only from JSON-native values (nil,
// bool, numbers, string, []any, map[string]any), wrapping every variant JSON
// cannot express in a single-key object under its reserved tag.
//
// Variants are matched in this order: primitive, []any, *OrderedMap, Record,
// map[string]any, *Map, Tuple, *Set, *Array. Anything else fails with
// *UnsupportedTypeError and no tree is returned.
//
// A map holding any reserved tag key is written under TagMap, so it cannot
// be mistaken for a wrapper when read back.
func Serialize(v any) (any, error) {
	return encoder{}.encode(v)
}

type encoder struct {
	// canonical folds numbers and sorts Map pairs and Set members by their
	// canonical encoding, producing a tree whose deterministic CBOR encoding
	// identifies the value.
	canonical bool
	// finite rejects NaN and ±Inf, for carriers that cannot write them.
	finite bool
}

func (e encoder) encode(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string:
		return t, nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		if e.finite && !isFinite(t) {
			return nil, unsupported(v, fmt.Sprintf("non-finite float %v", t))
		}
		if e.canonical {
			return foldNumber(t), nil
		}
		return t, nil
	case json.Number:
		n := foldNumber(t)
		if n == nil || !isFinite(n) {
			return nil, unsupported(v, fmt.Sprintf("invalid number literal %q", string(t)))
		}
		if e.canonical {
			return n, nil
		}
		return t, nil
	case []any:
		return e.list(t)
	case *OrderedMap:
		if t == nil {
			return nil, nil
		}
		pairs, err := e.pairs(t.t.entries, false)
		if err != nil {
			return nil, err
		}
		return map[string]any{TagOrderedMap: pairs}, nil
	case *DynamicRecord:
		if t == nil {
			return nil, nil
		}
		return e.record(t)
	case Record:
		if isNilRecord(t) {
			return nil, nil
		}
		return e.record(t)
	case map[string]any:
		return e.object(t)
	case *Map:
		if t == nil {
			return nil, nil
		}
		if t.t.allStringKeys() && !t.t.hasTagKey() {
			obj := make(map[string]any, t.Len())
			for _, en := range t.t.entries {
				obj[en.Key.(string)] = en.Value
			}
			return e.object(obj)
		}
		pairs, err := e.pairs(t.t.entries, e.canonical)
		if err != nil {
			return nil, err
		}
		return map[string]any{TagMap: pairs}, nil
	case Tuple:
		items, err := e.list(t)
		if err != nil {
			return nil, err
		}
		return map[string]any{TagTuple: items}, nil
	case *Set:
		if t == nil {
			return nil, nil
		}
		items, err := e.list(t.t.keys())
		if err != nil {
			return nil, err
		}
		if e.canonical {
			if items, err = sortByCanon(items, func(x any) any { return x }); err != nil {
				return nil, err
			}
		}
		return map[string]any{TagSet: items}, nil
	case *Array:
		if t == nil {
			return nil, nil
		}
		if t.dtype == "" {
			return nil, unsupported(v, "array has no dtype")
		}
		return e.array(t)
	default:
		return nil, unsupported(v, "")
	}
}

func (e encoder) list(in []any) ([]any, error) {
	out := make([]any, len(in))
	for i, x := range in {
		w, err := e.encode(x)
		if err != nil {
			return nil, atPath(err, strconv.Itoa(i))
		}
		out[i] = w
	}
	return out, nil
}

func (e encoder) object(in map[string]any) (any, error) {
	for k := range in {
		if IsTag(k) {
			return e.escaped(in)
		}
	}
	out := make(map[string]any, len(in))
	for k, x := range in {
		w, err := e.encode(x)
		if err != nil {
			return nil, atPath(err, k)
		}
		out[k] = w
	}
	return out, nil
}

// escaped writes an object holding a reserved key as sorted TagMap pairs,
// so it is not read back as a wrapper.
func (e encoder) escaped(in map[string]any) (any, error) {
	entries := make([]Entry, 0, len(in))
	for k, x := range in {
		entries = append(entries, Entry{Key: k, Value: x})
	}
	pairs, err := e.pairs(entries, true)
	if err != nil {
		return nil, err
	}
	return map[string]any{TagMap: pairs}, nil
}

// pairs encodes entries as [[key, value], ...], sorted by encoded key when
// sorted is set.
func (e encoder) pairs(entries []Entry, sorted bool) ([]any, error) {
	out := make([]any, len(entries))
	for i, en := range entries {
		seg := keySegment(en.Key, i)
		k, err := e.encode(en.Key)
		if err != nil {
			return nil, atPath(err, seg)
		}
		v, err := e.encode(en.Value)
		if err != nil {
			return nil, atPath(err, seg)
		}
		out[i] = []any{k, v}
	}
	if sorted {
		return sortByCanon(out, func(p any) any { return p.([]any)[0] })
	}
	return out, nil
}

func (e encoder) record(r Record) (any, error) {
	fields, values := r.RecordFields(), r.RecordValues()
	if len(fields) != len(values) {
		return nil, unsupported(r, fmt.Sprintf("record has %d fields but %d values", len(fields), len(values)))
	}
	names := make([]any, len(fields))
	for i, f := range fields {
		names[i] = f
	}
	enc := make([]any, len(values))
	for i, x := range values {
		w, err := e.encode(x)
		if err != nil {
			return nil, atPath(err, fields[i])
		}
		enc[i] = w
	}
	return map[string]any{TagRecord: map[string]any{
		recordTypeKey:   r.RecordType(),
		recordFieldsKey: names,
		recordValuesKey: enc,
	}}, nil
}

func (e encoder) array(a *Array) (any, error) {
	data := a.data
	if e.finite && (a.dtype == Float32 || a.dtype == Float64) {
		for i, x := range data {
			if !isFinite(x) {
				err := unsupported(x, fmt.Sprintf("non-finite float %v", x))
				for _, seg := range slices.Backward(flatIndex(i, a.shape)) {
					err = atPath(err, seg)
				}
				return nil, err
			}
		}
	}
	if e.canonical {
		data = make([]any, len(a.data))
		for i, x := range a.data {
			if _, ok := x.(bool); ok {
				data[i] = x
				continue
			}
			data[i] = foldNumber(x)
		}
	}
	var values any
	if len(a.shape) == 0 {
		values = data[0]
	} else {
		values, _ = nest(data, a.shape)
	}
	return map[string]any{TagArray: map[string]any{
		arrayValuesKey: values,
		arrayDTypeKey:  string(a.dtype),
	}}, nil
}

// flatIndex turns a row-major offset into one path segment per dimension.
func flatIndex(i int, shape []int) []string {
	segs := make([]string, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		segs[d] = strconv.Itoa(i % shape[d])
		i /= shape[d]
	}
	return segs
}

func isFinite(v any) bool {
	switch f := v.(type) {
	case float32:
		return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
	case float64:
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// isNilRecord reports a nil pointer (or other nil reference) behind a Record.
func isNilRecord(r Record) bool {
	rv := reflect.ValueOf(r)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// sortByCanon orders items by the canonical encoding of key(item).
func sortByCanon(items []any, key func(any) any) ([]any, error) {
	type keyed struct {
		k []byte
		v any
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		b, err := canonEncMode.Marshal(key(it))
		if err != nil {
			return nil, err
		}
		ks[i] = keyed{b, it}
	}
	slices.SortFunc(ks, func(a, b keyed) int { return bytes.Compare(a.k, b.k) })
	out := make([]any, len(ks))
	for i, k := range ks {
		out[i] = k.v
	}
	return out, nil
}

func keySegment(k any, i int) string {
	if s, ok := k.(string); ok {
		return s
	}
	switch KindOf(k) {
	case KindBool, KindNumber:
		return fmt.Sprint(k)
	}
	return strconv.Itoa(i)
}

// atPath prefixes the location of an UnsupportedTypeError with seg.
func atPath(err error, seg string) error {
	var ue *UnsupportedTypeError
	if errors.As(err, &ue) {
		ue.Path = "/" + escapePointer(seg) + ue.Path
	}
	return err
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string {
	return pointerEscaper.Replace(s)
}
