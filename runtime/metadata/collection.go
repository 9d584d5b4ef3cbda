package metadata

import "sync"

// Collection answers first/has/count queries over a resolved Mapping.
//
// Kinds that were part of the resolution are answered directly. Any other kind
// is indexed on first use by scanning every resolved attribute, in bucket
// order, for those whose kind is-a the queried kind; the result is memoized.
// The set of attributes is fixed at construction: querying never triggers
// another extraction.
//
// A Collection is safe for concurrent use.
type Collection struct {
	mu      sync.Mutex
	buckets []*Kind
	index   map[*Kind][]Attribute
}

// NewCollection wraps m. The mapping is copied, later changes to it are not
// observed.
func NewCollection(m *Mapping) *Collection {
	c := &Collection{index: make(map[*Kind][]Attribute)}
	if m == nil {
		return c
	}
	c.buckets = m.Kinds()
	for _, kind := range c.buckets {
		c.index[kind] = m.entries[kind]
	}
	return c
}

// First returns the most specific attribute of kind.
func (c *Collection) First(kind *Kind) (Attribute, bool) {
	attrs := c.lookup(kind)
	if len(attrs) == 0 {
		return nil, false
	}
	return attrs[0], true
}

// Has reports whether at least one attribute of kind is present.
func (c *Collection) Has(kind *Kind) bool {
	return c.Count(kind) > 0
}

// Count returns the number of attributes of kind.
func (c *Collection) Count(kind *Kind) int {
	return len(c.lookup(kind))
}

// All returns a copy of every attribute of kind, most specific first.
func (c *Collection) All(kind *Kind) []Attribute {
	attrs := c.lookup(kind)
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out
}

// Kinds returns the kinds the collection was built from.
func (c *Collection) Kinds() []*Kind {
	kinds := make([]*Kind, len(c.buckets))
	copy(kinds, c.buckets)
	return kinds
}

func (c *Collection) lookup(kind *Kind) []Attribute {
	if kind == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if attrs, ok := c.index[kind]; ok {
		return attrs
	}

	// Only the resolved buckets are scanned; lazily built indexes would
	// otherwise contribute the same attributes twice.
	var result []Attribute
	for _, bucket := range c.buckets {
		for _, attr := range c.index[bucket] {
			if kind.IsAssignableFrom(attr.Kind()) {
				result = append(result, attr)
			}
		}
	}

	c.index[kind] = result
	return result
}

// FirstOf returns the first attribute of kind as a T. It reports false when
// there is none or when the attribute is not a T.
func FirstOf[T Attribute](c *Collection, kind *Kind) (T, bool) {
	var zero T
	attr, ok := c.First(kind)
	if !ok {
		return zero, false
	}
	typed, ok := attr.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
