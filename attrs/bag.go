package attrs

// Bag is an ordered attribute set. It implements Object and Setter, so it can
// stand in for any target when only the data matters. Setting an existing
// name replaces its value and keeps its position. The zero value is ready to
// use.
type Bag struct {
	index map[string]int
	attrs []Attr
}

var (
	_ Object = (*Bag)(nil)
	_ Setter = (*Bag)(nil)
)

// NewBag builds a bag from attrs in order.
func NewBag(as ...Attr) *Bag {
	b := &Bag{}
	for _, a := range as {
		b.Set(a.Name, a.Value)
	}
	return b
}

func (b *Bag) Set(name string, value any) {
	if i, ok := b.index[name]; ok {
		b.attrs[i].Value = value
		return
	}
	if b.index == nil {
		b.index = make(map[string]int)
	}
	b.index[name] = len(b.attrs)
	b.attrs = append(b.attrs, Attr{Name: name, Value: value})
}

func (b *Bag) SetAttribute(name string, value any) error {
	b.Set(name, value)
	return nil
}

func (b *Bag) Get(name string) (any, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.attrs[i].Value, true
}

func (b *Bag) Len() int { return len(b.attrs) }

// Attributes returns a copy in insertion order.
func (b *Bag) Attributes() []Attr {
	out := make([]Attr, len(b.attrs))
	copy(out, b.attrs)
	return out
}
