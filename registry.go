package typedjson

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// RecordFactory builds a concrete record from positional field values. The
// values are already restored.
type RecordFactory func(values []any) (Record, error)

type recordType struct {
	fields  []string
	factory RecordFactory
}

// Registry maps record type names to their field lists and factories.
// Restore consults it for every record tag; unknown names become
// *DynamicRecord. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]recordType
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]recordType)}
}

// Register binds name to fields and factory. It fails with ErrDuplicateRecord
// if name is taken and with ErrInvalidRecord for an empty name, an empty or
// repeated field name, or a nil factory.
func (r *Registry) Register(name string, fields []string, factory RecordFactory) error {
	if name == "" {
		return fmt.Errorf("%w: empty type name", ErrInvalidRecord)
	}
	if factory == nil {
		return fmt.Errorf("%w: %s: nil factory", ErrInvalidRecord, name)
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f == "" {
			return fmt.Errorf("%w: %s: empty field name", ErrInvalidRecord, name)
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: %s: repeated field %q", ErrInvalidRecord, name, f)
		}
		seen[f] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.types == nil {
		r.types = make(map[string]recordType)
	}
	if _, ok := r.types[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, name)
	}
	r.types[name] = recordType{fields: slices.Clone(fields), factory: factory}
	return nil
}

// Lookup returns the registration for name.
func (r *Registry) Lookup(name string) (fields []string, factory RecordFactory, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.types[name]
	if !ok {
		return nil, nil, false
	}
	return slices.Clone(rt.fields), rt.factory, true
}

// Unregister removes name. It reports whether name was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.types[name]
	delete(r.types, name)
	return ok
}

// Names lists registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for n := range r.types {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is the registry used by the package-level functions and by
// codecs built without Options.Records.
func DefaultRegistry() *Registry { return defaultRegistry }

// RegisterRecord registers a record type in the default registry.
func RegisterRecord(name string, fields []string, factory RecordFactory) error {
	return defaultRegistry.Register(name, fields, factory)
}
