package typedjson

import (
	"fmt"
	"slices"
)

// Restore rebuilds the value a tagged wrapper stands for, using the default
// record registry. A mapping holding a reserved tag is a wrapper; the tags
// are checked in a fixed order and the first one present wins, other keys
// are ignored. Every other mapping is returned unchanged.
//
// Restore is meant to run as the per-object hook of a decoder, children
// first, so payloads it sees are already restored.
func Restore(obj map[string]any) (any, error) {
	return restore(obj, defaultRegistry)
}

func restore(obj map[string]any, reg *Registry) (any, error) {
	for _, tag := range restoreOrder {
		payload, ok := obj[tag]
		if !ok {
			continue
		}
		switch tag {
		case TagMap:
			return restoreMap(payload)
		case TagTuple:
			items, err := list(tag, payload)
			if err != nil {
				return nil, err
			}
			return Tuple(slices.Clone(items)), nil
		case TagSet:
			items, err := list(tag, payload)
			if err != nil {
				return nil, err
			}
			s, err := NewSet(items...)
			if err != nil {
				return nil, malformed(tag, "unusable member", err)
			}
			return s, nil
		case TagRecord:
			return restoreRecord(payload, reg)
		case TagArray:
			return restoreArray(payload)
		case TagOrderedMap:
			entries, err := pairList(tag, payload)
			if err != nil {
				return nil, err
			}
			m, err := NewOrderedMap(entries...)
			if err != nil {
				return nil, malformed(tag, "unusable key", err)
			}
			return m, nil
		}
	}
	return obj, nil
}

func restoreMap(payload any) (any, error) {
	entries, err := pairList(TagMap, payload)
	if err != nil {
		return nil, err
	}
	strKeys := true
	for _, en := range entries {
		if _, ok := en.Key.(string); !ok {
			strKeys = false
			break
		}
	}
	if strKeys {
		obj := make(map[string]any, len(entries))
		for _, en := range entries {
			obj[en.Key.(string)] = en.Value
		}
		return obj, nil
	}
	m, err := NewMap(entries...)
	if err != nil {
		return nil, malformed(TagMap, "unusable key", err)
	}
	return m, nil
}

func restoreRecord(payload any, reg *Registry) (any, error) {
	body, ok := payload.(map[string]any)
	if !ok {
		return nil, malformed(TagRecord, fmt.Sprintf("payload is %s, want object", describe(payload)), nil)
	}
	typ, ok := body[recordTypeKey].(string)
	if !ok {
		return nil, malformed(TagRecord, missingOrWrong(body, recordTypeKey, "string"), nil)
	}
	rawFields, ok := body[recordFieldsKey].([]any)
	if !ok {
		return nil, malformed(TagRecord, missingOrWrong(body, recordFieldsKey, "list"), nil)
	}
	values, ok := body[recordValuesKey].([]any)
	if !ok {
		return nil, malformed(TagRecord, missingOrWrong(body, recordValuesKey, "list"), nil)
	}
	fields := make([]string, len(rawFields))
	for i, f := range rawFields {
		s, ok := f.(string)
		if !ok {
			return nil, malformed(TagRecord, fmt.Sprintf("field %d is %s, want string", i, describe(f)), nil)
		}
		fields[i] = s
	}
	if len(fields) != len(values) {
		return nil, malformed(TagRecord, fmt.Sprintf("%d fields but %d values", len(fields), len(values)), nil)
	}

	if reg != nil {
		if want, factory, ok := reg.Lookup(typ); ok {
			if !slices.Equal(want, fields) {
				return nil, malformed(TagRecord, fmt.Sprintf("fields %v do not match registered type %s%v", fields, typ, want), nil)
			}
			r, err := factory(slices.Clone(values))
			if err != nil {
				return nil, malformed(TagRecord, "record factory for "+typ+" failed", err)
			}
			return r, nil
		}
	}
	return &DynamicRecord{Type: typ, Fields: fields, Values: slices.Clone(values)}, nil
}

func restoreArray(payload any) (any, error) {
	body, ok := payload.(map[string]any)
	if !ok {
		return nil, malformed(TagArray, fmt.Sprintf("payload is %s, want object", describe(payload)), nil)
	}
	ds, ok := body[arrayDTypeKey].(string)
	if !ok {
		return nil, malformed(TagArray, missingOrWrong(body, arrayDTypeKey, "string"), nil)
	}
	values, ok := body[arrayValuesKey]
	if !ok {
		return nil, malformed(TagArray, `missing "values"`, nil)
	}
	dtype, err := ParseDType(ds)
	if err != nil {
		return nil, malformed(TagArray, "bad dtype", err)
	}
	shape, flat, err := inferShape(values)
	if err != nil {
		return nil, malformed(TagArray, "bad values", err)
	}
	a, err := NewArray(dtype, shape, flat)
	if err != nil {
		return nil, malformed(TagArray, "bad values", err)
	}
	return a, nil
}

func list(tag string, payload any) ([]any, error) {
	items, ok := payload.([]any)
	if !ok {
		return nil, malformed(tag, fmt.Sprintf("payload is %s, want list", describe(payload)), nil)
	}
	return items, nil
}

// pairList reads [[k, v], ...]. A pair may also arrive as a Tuple.
func pairList(tag string, payload any) ([]Entry, error) {
	items, err := list(tag, payload)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(items))
	for i, it := range items {
		var pair []any
		switch p := it.(type) {
		case []any:
			pair = p
		case Tuple:
			pair = p
		}
		if len(pair) != 2 {
			return nil, malformed(tag, fmt.Sprintf("element %d is %s, want [key, value] pair", i, describe(it)), nil)
		}
		out[i] = Entry{Key: pair[0], Value: pair[1]}
	}
	return out, nil
}

func missingOrWrong(body map[string]any, key, want string) string {
	v, ok := body[key]
	if !ok {
		return fmt.Sprintf("missing %q", key)
	}
	return fmt.Sprintf("%q is %s, want %s", key, describe(v), want)
}

func describe(v any) string {
	if k := KindOf(v); k != KindInvalid {
		return k.String()
	}
	return fmt.Sprintf("%T", v)
}
