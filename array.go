package typedjson

import (
	"fmt"
	"math"
	"slices"
)

// DType is the element type of an Array, spelled the way it appears on the
// wire.
type DType string

const (
	Bool    DType = "bool"
	Int8    DType = "int8"
	Int16   DType = "int16"
	Int32   DType = "int32"
	Int64   DType = "int64"
	Uint8   DType = "uint8"
	Uint16  DType = "uint16"
	Uint32  DType = "uint32"
	Uint64  DType = "uint64"
	Float32 DType = "float32"
	Float64 DType = "float64"
)

var dtypes = [...]DType{Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64}

// ParseDType validates a wire dtype string.
func ParseDType(s string) (DType, error) {
	for _, d := range dtypes {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown dtype %q", ErrInvalidArray, s)
}

// Element is the set of Go types an Array can hold.
type Element interface {
	bool | int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// Array is a fixed-size n-dimensional array with a single element type. Data
// is stored flat in row-major order. An empty shape is a 0-d array holding one
// element.
type Array struct {
	dtype DType
	shape []int
	data  []any // each element already holds the Go type of dtype
}

// NewArray builds an array of dtype with the given shape. data is a flat
// row-major slice (typed or []any); every element is converted to dtype,
// with floats truncated toward zero for integer dtypes.
func NewArray(dtype DType, shape []int, data any) (*Array, error) {
	if _, err := ParseDType(string(dtype)); err != nil {
		return nil, err
	}
	n, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}
	flat, err := flatAny(data)
	if err != nil {
		return nil, err
	}
	if len(flat) != n {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrInvalidArray, shape, n, len(flat))
	}
	out := make([]any, len(flat))
	for i, v := range flat {
		c, err := coerce(dtype, v)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidArray, i, err)
		}
		out[i] = c
	}
	return &Array{dtype: dtype, shape: slices.Clone(shape), data: out}, nil
}

// FromSlice builds an array from a typed flat slice, taking the dtype from T.
func FromSlice[T Element](shape []int, data []T) (*Array, error) {
	var zero T
	return NewArray(dtypeOf(zero), shape, data)
}

// Vector is FromSlice for a one-dimensional array.
func Vector[T Element](data ...T) *Array {
	a, err := FromSlice([]int{len(data)}, data)
	if err != nil {
		// Shape and dtype are derived from data, so construction cannot fail.
		panic(err)
	}
	return a
}

func (a *Array) DType() DType { return a.dtype }
func (a *Array) Shape() []int { return slices.Clone(a.shape) }
func (a *Array) Len() int     { return len(a.data) }

// At returns the flat element at i.
func (a *Array) At(i int) any { return a.data[i] }

// Flat returns a copy of the elements in row-major order.
func (a *Array) Flat() []any { return slices.Clone(a.data) }

// Nested returns the elements as nested []any following the shape, or the
// single element of a 0-d array.
func (a *Array) Nested() any {
	if len(a.data) == 0 && len(a.shape) == 0 {
		return nil
	}
	if len(a.shape) == 0 {
		return a.data[0]
	}
	v, _ := nest(a.data, a.shape)
	return v
}

func nest(flat []any, shape []int) (any, []any) {
	if len(shape) == 0 {
		return flat[0], flat[1:]
	}
	out := make([]any, shape[0])
	for i := range out {
		if len(shape) == 1 {
			out[i] = flat[0]
			flat = flat[1:]
			continue
		}
		out[i], flat = nest(flat, shape[1:])
	}
	return out, flat
}

func shapeSize(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension in shape %v", ErrInvalidArray, shape)
		}
		if d != 0 && n > math.MaxInt/d {
			return 0, fmt.Errorf("%w: shape %v overflows", ErrInvalidArray, shape)
		}
		n *= d
	}
	return n, nil
}

// inferShape walks nested lists and returns the shape and flat elements.
// Rows must be rectangular. Zero-size dimensions after the first are not
// recoverable: [[],[]] has shape [2 0] but [] is always [0].
func inferShape(v any) ([]int, []any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, []any{v}, nil
	}
	if len(list) == 0 {
		return []int{0}, nil, nil
	}
	var (
		sub  []int
		flat []any
	)
	for i, e := range list {
		s, f, err := inferShape(e)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			sub = s
		} else if !slices.Equal(sub, s) {
			return nil, nil, fmt.Errorf("ragged values: row %d has shape %v, row 0 has %v", i, s, sub)
		}
		flat = append(flat, f...)
	}
	return append([]int{len(list)}, sub...), flat, nil
}

func flatAny(data any) ([]any, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil
	case []any:
		return d, nil
	case []bool:
		return toAnys(d), nil
	case []int8:
		return toAnys(d), nil
	case []int16:
		return toAnys(d), nil
	case []int32:
		return toAnys(d), nil
	case []int64:
		return toAnys(d), nil
	case []int:
		return toAnys(d), nil
	case []uint8:
		return toAnys(d), nil
	case []uint16:
		return toAnys(d), nil
	case []uint32:
		return toAnys(d), nil
	case []uint64:
		return toAnys(d), nil
	case []float32:
		return toAnys(d), nil
	case []float64:
		return toAnys(d), nil
	default:
		return nil, fmt.Errorf("%w: data of type %T is not a flat slice", ErrInvalidArray, data)
	}
}

func toAnys[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func dtypeOf(v any) DType {
	switch v.(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return ""
	}
}

// coerce converts a single element to the Go type of dtype.
func coerce(dtype DType, v any) (any, error) {
	switch dtype {
	case Bool:
		return toBool(v)
	case Int8:
		i, err := toInt64(v, math.MinInt8, math.MaxInt8)
		return int8(i), err
	case Int16:
		i, err := toInt64(v, math.MinInt16, math.MaxInt16)
		return int16(i), err
	case Int32:
		i, err := toInt64(v, math.MinInt32, math.MaxInt32)
		return int32(i), err
	case Int64:
		return toInt64(v, math.MinInt64, math.MaxInt64)
	case Uint8:
		u, err := toUint64(v, math.MaxUint8)
		return uint8(u), err
	case Uint16:
		u, err := toUint64(v, math.MaxUint16)
		return uint16(u), err
	case Uint32:
		u, err := toUint64(v, math.MaxUint32)
		return uint32(u), err
	case Uint64:
		return toUint64(v, math.MaxUint64)
	case Float32:
		f, err := toFloat64(v)
		return float32(f), err
	case Float64:
		return toFloat64(v)
	default:
		return nil, fmt.Errorf("unknown dtype %q", dtype)
	}
}
