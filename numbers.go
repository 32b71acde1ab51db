package typedjson

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/unkn0wn-root/typedjson/codec"
)

// AsInt64 returns v as an int64 when v is a number with an exact integer
// value in range. Integral floats qualify; 1.5 does not.
func AsInt64(v any) (int64, bool) {
	switch n := foldNumber(v).(type) {
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// AsFloat64 returns any number as a float64. Large integers lose precision.
func AsFloat64(v any) (float64, bool) {
	switch n := normNumber(v).(type) {
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// normNumber maps every Go number type onto int64, uint64 or float64 the way
// the carriers do. Non-numbers come back as nil.
func normNumber(v any) any {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		n, err := codec.Normalize(v)
		if err != nil {
			return nil
		}
		return n
	default:
		return nil
	}
}

// foldNumber is normNumber plus folding of integral floats onto integers, so
// that 1 and 1.0 share one canonical form.
func foldNumber(v any) any {
	n := normNumber(v)
	f, ok := n.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return n
	}
	switch {
	case f >= math.MinInt64 && f < math.MaxInt64:
		return int64(f)
	case f >= 0 && f < math.MaxUint64:
		return uint64(f)
	default:
		return f
	}
}

// toInt64 converts a decoded number into an integer within [lo, hi].
// Floats truncate toward zero; booleans count as 0 and 1.
func toInt64(v any, lo, hi int64) (int64, error) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	var i int64
	switch n := normNumber(v).(type) {
	case int64:
		i = n
	case uint64:
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("cannot convert %v to an integer", n)
		}
		t := math.Trunc(n)
		if t < math.MinInt64 || t >= math.MaxInt64 {
			return 0, fmt.Errorf("%v out of range [%d, %d]", n, lo, hi)
		}
		i = int64(t)
	default:
		return 0, fmt.Errorf("element of type %T is not a number", v)
	}
	if i < lo || i > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", i, lo, hi)
	}
	return i, nil
}

// toUint64 is toInt64 for unsigned element types.
func toUint64(v any, hi uint64) (uint64, error) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	var u uint64
	switch n := normNumber(v).(type) {
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("%d out of range [0, %d]", n, hi)
		}
		u = uint64(n)
	case uint64:
		u = n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("cannot convert %v to an integer", n)
		}
		t := math.Trunc(n)
		if t < 0 || t >= math.MaxUint64 {
			return 0, fmt.Errorf("%v out of range [0, %d]", n, hi)
		}
		u = uint64(t)
	default:
		return 0, fmt.Errorf("element of type %T is not a number", v)
	}
	if u > hi {
		return 0, fmt.Errorf("%d out of range [0, %d]", u, hi)
	}
	return u, nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	f, ok := AsFloat64(v)
	if !ok {
		return 0, fmt.Errorf("element of type %T is not a number", v)
	}
	return f, nil
}

func toBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}
