package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Walk normalizes a tree produced by a foreign decoder into JSON-native
// shapes and applies hook to every object bottom-up. Carriers without a
// streaming object callback decode first and then call Walk, which yields the
// same transform order as the JSON parser.
//
// Integers become int64 (uint64 above MaxInt64), floats become float64,
// json.Number follows the JSON parser's number rules and map[any]any with
// string keys becomes map[string]any. Anything else is rejected.
func Walk(v any, hook Hook) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return foldUint(uint64(t)), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return foldUint(t), nil
	case float32:
		return Float32(t), nil
	case json.Number:
		return parseNumber(string(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			w, err := Walk(e, hook)
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return out, nil
	case map[string]any:
		obj := make(map[string]any, len(t))
		for k, e := range t {
			w, err := Walk(e, hook)
			if err != nil {
				return nil, err
			}
			obj[k] = w
		}
		return applyHook(obj, hook)
	case map[any]any:
		obj := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("object key of type %T is not a string", k)
			}
			w, err := Walk(e, hook)
			if err != nil {
				return nil, err
			}
			obj[ks] = w
		}
		return applyHook(obj, hook)
	default:
		return nil, fmt.Errorf("value of type %T has no JSON equivalent", v)
	}
}

// Normalize converts every number in a JSON-native tree to int64, uint64 or
// float64. Non-JSON carriers encode the normalized tree so that json.Number
// literals and narrow integer types travel as numbers.
func Normalize(v any) (any, error) {
	return Walk(v, nil)
}

// Float32 widens f to the float64 with the same shortest decimal form, so a
// float32 carried by any format decodes to what the JSON text would hold.
func Float32(f float32) float64 {
	w, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return w
}

func applyHook(obj map[string]any, hook Hook) (any, error) {
	if hook == nil {
		return obj, nil
	}
	return hook(obj)
}

func foldUint(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return u
}

// walkDecoded runs Walk for a foreign decoder, reporting shape problems as
// format errors while passing hook errors through untouched.
func walkDecoded(format string, v any, hook Hook) (any, error) {
	var hookErr error
	wrapped := hook
	if hook != nil {
		wrapped = func(obj map[string]any) (any, error) {
			out, err := hook(obj)
			if err != nil {
				hookErr = err
			}
			return out, err
		}
	}
	out, err := Walk(v, wrapped)
	if err != nil {
		if hookErr != nil {
			return nil, hookErr
		}
		return nil, formatError(format, -1, err)
	}
	return out, nil
}
