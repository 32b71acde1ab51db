package typedjson

// Tuple is a fixed-length heterogeneous sequence. It is encoded under
// TagTuple, unlike a plain []any which stays a native list.
type Tuple []any

// Entry is one key/value pair of a Map or OrderedMap.
type Entry struct {
	Key   any
	Value any
}

// table is an insertion-ordered hash table keyed by canonical key encodings,
// so keys may be any supported value (tuples, numbers, sets...). Keys must not
// be mutated after insertion.
type table struct {
	index   map[string]int
	entries []Entry
}

func (t *table) put(k, v any) error {
	ck, err := canonicalKey(k)
	if err != nil {
		return err
	}
	if i, ok := t.index[ck]; ok {
		t.entries[i].Value = v
		return nil
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[ck] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: k, Value: v})
	return nil
}

func (t *table) lookup(k any) (int, bool) {
	if len(t.entries) == 0 {
		return 0, false
	}
	ck, err := canonicalKey(k)
	if err != nil {
		return 0, false
	}
	i, ok := t.index[ck]
	return i, ok
}

func (t *table) has(k any) bool {
	_, ok := t.lookup(k)
	return ok
}

func (t *table) get(k any) (any, bool) {
	i, ok := t.lookup(k)
	if !ok {
		return nil, false
	}
	return t.entries[i].Value, true
}

func (t *table) del(k any) bool {
	i, ok := t.lookup(k)
	if !ok {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	for ck, j := range t.index {
		switch {
		case j == i:
			delete(t.index, ck)
		case j > i:
			t.index[ck] = j - 1
		}
	}
	return true
}

func (t *table) keys() []any {
	out := make([]any, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Key
	}
	return out
}

func (t *table) copyEntries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *table) hasTagKey() bool {
	for _, e := range t.entries {
		if k, ok := e.Key.(string); ok && IsTag(k) {
			return true
		}
	}
	return false
}

func (t *table) allStringKeys() bool {
	for _, e := range t.entries {
		if _, ok := e.Key.(string); !ok {
			return false
		}
	}
	return true
}

// Map is a mapping whose keys may be any supported value. Iteration follows
// insertion order but the order is not part of its identity: two maps with
// the same pairs are Equal regardless of order. The zero value is ready to use.
type Map struct {
	t table
}

// NewMap builds a Map from entries. A repeated key keeps the last value.
func NewMap(entries ...Entry) (*Map, error) {
	m := &Map{}
	for _, e := range entries {
		if err := m.Set(e.Key, e.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Set stores v under k. It fails only when k is not a supported value.
func (m *Map) Set(k, v any) error { return m.t.put(k, v) }

func (m *Map) Get(k any) (any, bool) { return m.t.get(k) }
func (m *Map) Has(k any) bool        { return m.t.has(k) }
func (m *Map) Delete(k any) bool     { return m.t.del(k) }
func (m *Map) Len() int              { return len(m.t.entries) }
func (m *Map) Keys() []any           { return m.t.keys() }

// Entries returns a copy of the pairs in insertion order.
func (m *Map) Entries() []Entry { return m.t.copyEntries() }

// OrderedMap is a mapping that remembers insertion order, and whose order is
// part of its identity. Re-setting an existing key keeps its position.
// The zero value is ready to use.
type OrderedMap struct {
	t table
}

// NewOrderedMap builds an OrderedMap from entries in order.
func NewOrderedMap(entries ...Entry) (*OrderedMap, error) {
	m := &OrderedMap{}
	for _, e := range entries {
		if err := m.Set(e.Key, e.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *OrderedMap) Set(k, v any) error    { return m.t.put(k, v) }
func (m *OrderedMap) Get(k any) (any, bool) { return m.t.get(k) }
func (m *OrderedMap) Has(k any) bool        { return m.t.has(k) }
func (m *OrderedMap) Delete(k any) bool     { return m.t.del(k) }
func (m *OrderedMap) Len() int              { return len(m.t.entries) }
func (m *OrderedMap) Keys() []any           { return m.t.keys() }
func (m *OrderedMap) Entries() []Entry      { return m.t.copyEntries() }

// Set is an unordered collection of unique supported values. Membership uses
// canonical equality, so 1 and 1.0 are the same member.
// The zero value is ready to use.
type Set struct {
	t table
}

// NewSet builds a Set; duplicates collapse.
func NewSet(items ...any) (*Set, error) {
	s := &Set{}
	for _, it := range items {
		if err := s.Add(it); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts v. Adding an existing member is a no-op.
func (s *Set) Add(v any) error {
	if s.t.has(v) {
		return nil
	}
	return s.t.put(v, nil)
}

func (s *Set) Has(v any) bool    { return s.t.has(v) }
func (s *Set) Remove(v any) bool { return s.t.del(v) }
func (s *Set) Len() int          { return len(s.t.entries) }

// Items returns the members in insertion order.
func (s *Set) Items() []any { return s.t.keys() }
