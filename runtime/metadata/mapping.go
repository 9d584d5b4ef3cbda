package metadata

// Mapping is an ordered table from kind to the attributes resolved for it.
// Key order is insertion order; within a key, attributes are ordered from the
// most specific declaration to the most general one.
type Mapping struct {
	kinds   []*Kind
	entries map[*Kind][]Attribute
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: make(map[*Kind][]Attribute)}
}

// Kinds returns the keys in insertion order.
func (m *Mapping) Kinds() []*Kind {
	if m == nil {
		return nil
	}
	kinds := make([]*Kind, len(m.kinds))
	copy(kinds, m.kinds)
	return kinds
}

// Get returns a copy of the attributes stored under kind.
func (m *Mapping) Get(kind *Kind) []Attribute {
	attrs, _ := m.Lookup(kind)
	return attrs
}

// Lookup is like Get but also reports whether kind is a key.
func (m *Mapping) Lookup(kind *Kind) ([]Attribute, bool) {
	if m == nil {
		return nil, false
	}
	attrs, ok := m.entries[kind]
	if !ok {
		return nil, false
	}
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out, true
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.kinds)
}

// set stores attrs under kind without copying; attrs must not be modified
// afterwards.
func (m *Mapping) set(kind *Kind, attrs []Attribute) {
	if _, ok := m.entries[kind]; !ok {
		m.kinds = append(m.kinds, kind)
	}
	m.entries[kind] = attrs
}

// combine joins a higher-precedence mapping with a lower-precedence one.
// With merge, sequences of the same kind are concatenated. Without merge, a
// non-empty higher-precedence sequence wins and the lower side only fills in
// missing or empty keys. Neither input is modified.
func combine(higher, lower *Mapping, merge bool) *Mapping {
	result := NewMapping()
	for _, kind := range higher.kinds {
		result.set(kind, higher.entries[kind])
	}

	for _, kind := range lower.kinds {
		attrs := lower.entries[kind]
		existing, ok := result.entries[kind]
		switch {
		case !ok:
			result.set(kind, attrs)
		case merge:
			joined := make([]Attribute, 0, len(existing)+len(attrs))
			joined = append(joined, existing...)
			result.set(kind, append(joined, attrs...))
		case len(existing) == 0:
			result.set(kind, attrs)
		}
	}

	return result
}
