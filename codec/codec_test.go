package codec

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() any {
	return map[string]any{
		"name":  "worm",
		"ok":    true,
		"none":  nil,
		"count": int64(3),
		"ratio": 0.25,
		"list":  []any{int64(1), "two", []any{int64(3)}},
		"inner": map[string]any{"deep": map[string]any{"x": int64(-7)}},
	}
}

func TestFormatsRoundTrip(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f, err := Lookup(name)
			require.NoError(t, err)

			b, err := f.Encode(sampleTree())
			require.NoError(t, err)

			got, err := f.Decode(b, nil)
			require.NoError(t, err)

			m, ok := got.(map[string]any)
			require.True(t, ok, "top-level should be an object, got %T", got)
			assert.Equal(t, "worm", m["name"])
			assert.Equal(t, true, m["ok"])
			assert.Nil(t, m["none"])
			assert.EqualValues(t, 0.25, m["ratio"])
			inner := m["inner"].(map[string]any)["deep"].(map[string]any)
			assert.EqualValues(t, -7, toFloat(inner["x"]))
			assert.Len(t, m["list"], 3)
		})
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return math.NaN()
}

func TestHookRunsBottomUp(t *testing.T) {
	src := `{"outer": {"inner": {"leaf": 1}}, "n": 2}`
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f, err := Lookup(name)
			require.NoError(t, err)

			tree, err := JSON{}.Decode([]byte(src), nil)
			require.NoError(t, err)
			b, err := f.Encode(tree)
			require.NoError(t, err)

			var order []int
			hook := func(obj map[string]any) (any, error) {
				order = append(order, len(obj))
				// Replace every object by its key count; parents see the
				// already-replaced children.
				for _, v := range obj {
					if m, ok := v.(map[string]any); ok {
						t.Fatalf("child object %v reached parent untransformed", m)
					}
				}
				return int64(len(obj)), nil
			}
			got, err := f.Decode(b, hook)
			require.NoError(t, err)
			assert.EqualValues(t, 2, toFloat(got))
			assert.Equal(t, []int{1, 1, 2}, order)
		})
	}
}

func TestHookErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f, err := Lookup(name)
			require.NoError(t, err)
			b, err := f.Encode(map[string]any{"a": map[string]any{"b": int64(1)}})
			require.NoError(t, err)

			_, err = f.Decode(b, func(map[string]any) (any, error) { return nil, boom })
			require.ErrorIs(t, err, boom)
			assert.NotErrorIs(t, err, ErrFormat)
		})
	}
}

func TestJSONNumbers(t *testing.T) {
	got, err := JSON{}.Decode([]byte(`[1, -2, 1.5, 1e3, 18446744073709551615, 123456789012345678901234]`), nil)
	require.NoError(t, err)
	list := got.([]any)
	assert.Equal(t, int64(1), list[0])
	assert.Equal(t, int64(-2), list[1])
	assert.Equal(t, 1.5, list[2])
	assert.Equal(t, 1000.0, list[3])
	assert.Equal(t, uint64(math.MaxUint64), list[4])
	assert.IsType(t, float64(0), list[5])
}

func TestJSONMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"truncated":     `[1, 2`,
		"trailing":      `{"a": 1} {"b": 2}`,
		"bad token":     `{"a": nope}`,
		"float too big": `1e400`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := JSON{}.Decode([]byte(src), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormat)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "json", fe.Format)
		})
	}
}

func TestJSONEncodeIndentAndEscaping(t *testing.T) {
	b, err := JSON{}.Encode(map[string]any{"k": "<a&b>"})
	require.NoError(t, err)
	assert.Equal(t, `{"k":"<a&b>"}`, string(b))

	b, err = JSON{Indent: "  "}.Encode([]any{int64(1)})
	require.NoError(t, err)
	assert.Equal(t, "[\n  1\n]", string(b))
}

func TestWalkRejectsForeignValues(t *testing.T) {
	_, err := Walk(map[any]any{1: "x"}, nil)
	require.Error(t, err)

	_, err = Walk([]any{[]byte("raw")}, nil)
	require.Error(t, err)

	got, err := Walk(map[any]any{"a": uint8(4), "b": float32(0.5), "c": uint64(math.MaxUint64)}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(4), "b": 0.5, "c": uint64(math.MaxUint64)}, got)
}

func TestLimit(t *testing.T) {
	var inner Codec[any] = formatCodec{JSON{}}
	lc := Limit[any]{Inner: inner, MaxDecode: 4}

	_, err := lc.Decode([]byte(`[1,2,3]`))
	require.ErrorIs(t, err, ErrPayloadTooLarge)

	got, err := lc.Decode([]byte(`[1]`))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1)}, got)

	unlimited := Limit[any]{Inner: inner}
	_, err = unlimited.Decode([]byte(strings.Repeat(" ", 64) + "1"))
	require.NoError(t, err)
}

// formatCodec adapts a Format without hook to Codec[any].
type formatCodec struct{ f Format }

func (c formatCodec) Encode(v any) ([]byte, error) { return c.f.Encode(v) }
func (c formatCodec) Decode(b []byte) (any, error) { return c.f.Decode(b, nil) }

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("xml")
	require.Error(t, err)
	assert.Equal(t, []string{"bson", "cbor", "json", "msgpack", "protobuf", "yaml"}, Names())
}

func TestBSONRejectsForeignDocument(t *testing.T) {
	b, err := BSON{}.Encode(int64(1))
	require.NoError(t, err)
	got, err := BSON{}.Decode(b, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, toFloat(got))

	_, err = BSON{}.Decode([]byte{0x01}, nil)
	require.ErrorIs(t, err, ErrFormat)
}
