package codec

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bsonRoot is the single field of the wrapper document; BSON cannot carry a
// bare scalar or array at the top level.
const bsonRoot = "v"

// BSON carries trees as BSON documents using the MongoDB driver.
// The zero value is ready to use.
type BSON struct{}

var _ Format = BSON{}

func (BSON) Name() string        { return "bson" }
func (BSON) ContentType() string { return "application/bson" }

func (BSON) Encode(tree any) ([]byte, error) {
	norm, err := Normalize(tree)
	if err != nil {
		return nil, err
	}
	return bson.Marshal(bson.M{bsonRoot: norm})
}

func (c BSON) Decode(b []byte, hook Hook) (any, error) {
	var doc bson.M
	if err := bson.Unmarshal(b, &doc); err != nil {
		return nil, formatError(c.Name(), -1, err)
	}
	root, ok := doc[bsonRoot]
	if !ok || len(doc) != 1 {
		return nil, formatError(c.Name(), -1, errors.New("missing wrapper document"))
	}
	plain, err := fromBSON(root)
	if err != nil {
		return nil, formatError(c.Name(), -1, err)
	}
	return walkDecoded(c.Name(), plain, hook)
}

// fromBSON rewrites driver container types into plain maps and slices.
func fromBSON(v any) (any, error) {
	switch t := v.(type) {
	case primitive.M:
		return fromBSONMap(t)
	case map[string]any:
		return fromBSONMap(t)
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			pv, err := fromBSON(e.Value)
			if err != nil {
				return nil, err
			}
			m[e.Key] = pv
		}
		return m, nil
	case primitive.A:
		return fromBSONList(t)
	case []any:
		return fromBSONList(t)
	case primitive.Null, primitive.Undefined:
		return nil, nil
	case nil, bool, string, int32, int64, float64:
		return t, nil
	default:
		return nil, fmt.Errorf("bson value of type %T has no JSON equivalent", v)
	}
}

func fromBSONMap(src map[string]any) (map[string]any, error) {
	m := make(map[string]any, len(src))
	for k, e := range src {
		pv, err := fromBSON(e)
		if err != nil {
			return nil, err
		}
		m[k] = pv
	}
	return m, nil
}

func fromBSONList(src []any) ([]any, error) {
	out := make([]any, len(src))
	for i, e := range src {
		pv, err := fromBSON(e)
		if err != nil {
			return nil, err
		}
		out[i] = pv
	}
	return out, nil
}
