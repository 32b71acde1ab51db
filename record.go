package typedjson

// Record is a value with a type name and a fixed, ordered set of named
// fields. RecordFields and RecordValues are parallel and must have the same
// length.
type Record interface {
	RecordType() string
	RecordFields() []string
	RecordValues() []any
}

// DynamicRecord is the record Restore produces for a type name with no
// registration. It can also be built directly.
type DynamicRecord struct {
	Type   string
	Fields []string
	Values []any
}

var _ Record = (*DynamicRecord)(nil)

func (r *DynamicRecord) RecordType() string     { return r.Type }
func (r *DynamicRecord) RecordFields() []string { return r.Fields }
func (r *DynamicRecord) RecordValues() []any    { return r.Values }

// Get returns the value of the named field.
func (r *DynamicRecord) Get(field string) (any, bool) {
	for i, f := range r.Fields {
		if f == field && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return nil, false
}
