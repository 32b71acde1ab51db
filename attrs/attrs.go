// Package attrs converts an object's attribute set to and from the persisted
// layout: an ordered list of [name, value] pairs.
//
// Pairs produces a plain list, so the codec writes it with no tagging. On the
// way back FromPairs also accepts pairs that arrive as typedjson.Tuple, which
// is how the earlier tool wrote them.
package attrs

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/typedjson"
)

// ErrShape indicates a decoded tree that is not a list of [name, value] pairs.
var ErrShape = errors.New("attrs: not a list of [name, value] pairs")

// ShapeError locates the first element that breaks the pair layout.
type ShapeError struct {
	Index  int    // element index, or -1 for the top level
	Reason string // what was found
}

func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("attrs: %s", e.Reason)
	}
	return fmt.Sprintf("attrs: element %d: %s", e.Index, e.Reason)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// Attr is one named attribute.
type Attr struct {
	Name  string
	Value any
}

// Object exposes its attributes in a stable order.
type Object interface {
	Attributes() []Attr
}

// Setter accepts attributes one at a time.
type Setter interface {
	SetAttribute(name string, value any) error
}

// Pairs returns obj's attributes as [][name, value] in order.
func Pairs(obj Object) []any {
	as := obj.Attributes()
	out := make([]any, len(as))
	for i, a := range as {
		out[i] = []any{a.Name, a.Value}
	}
	return out
}

// FromPairs reads the pair layout back. Each element must be a two-element
// []any or typedjson.Tuple whose first element is a string.
func FromPairs(tree any) ([]Attr, error) {
	list, ok := tree.([]any)
	if !ok {
		return nil, &ShapeError{Index: -1, Reason: fmt.Sprintf("top level is %T, want list", tree)}
	}
	out := make([]Attr, len(list))
	for i, el := range list {
		var pair []any
		switch p := el.(type) {
		case []any:
			pair = p
		case typedjson.Tuple:
			pair = p
		default:
			return nil, &ShapeError{Index: i, Reason: fmt.Sprintf("%T is not a pair", el)}
		}
		if len(pair) != 2 {
			return nil, &ShapeError{Index: i, Reason: fmt.Sprintf("pair has %d elements", len(pair))}
		}
		name, ok := pair[0].(string)
		if !ok {
			return nil, &ShapeError{Index: i, Reason: fmt.Sprintf("name is %T, want string", pair[0])}
		}
		out[i] = Attr{Name: name, Value: pair[1]}
	}
	return out, nil
}

// Apply sets every attribute on dst in order, stopping at the first error.
func Apply(dst Setter, as []Attr) error {
	for _, a := range as {
		if err := dst.SetAttribute(a.Name, a.Value); err != nil {
			return fmt.Errorf("attrs: set %q: %w", a.Name, err)
		}
	}
	return nil
}
