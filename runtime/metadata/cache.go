package metadata

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores attributes extracted from a single type declaration, keyed by
// the registered declaration and the requested kind. Declarations never change
// at runtime, so entries never go stale; a cache may still drop entries, which
// only costs a re-extraction.
//
// Keys are declaration identities, not names: one cache may be shared by
// extractors over different registries that declare the same type name.
//
// Implementations must be safe for concurrent use. Stored slices are shared
// and must not be modified.
type Cache interface {
	// Get retrieves the attributes of kind declared directly on decl
	Get(decl *TypeDecl, kind *Kind) ([]Attribute, bool)

	// Set stores the attributes of kind declared directly on decl
	Set(decl *TypeDecl, kind *Kind, attrs []Attribute)

	// Len returns the number of cached entries
	Len() int

	// Clear removes all entries
	Clear()
}

type cacheKey struct {
	decl *TypeDecl
	kind *Kind
}

// MemoryCache is an unbounded in-memory Cache. It is the default for
// long-lived processes where the set of declared types is fixed.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[cacheKey][]Attribute
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[cacheKey][]Attribute)}
}

// Get implements Cache.
func (m *MemoryCache) Get(decl *TypeDecl, kind *Kind) ([]Attribute, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	attrs, ok := m.data[cacheKey{decl: decl, kind: kind}]
	return attrs, ok
}

// Set implements Cache.
func (m *MemoryCache) Set(decl *TypeDecl, kind *Kind, attrs []Attribute) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[cacheKey{decl: decl, kind: kind}] = attrs
}

// Len implements Cache.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear implements Cache.
func (m *MemoryCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[cacheKey][]Attribute)
}

// LRUCache is a bounded Cache that evicts the least recently used entries.
type LRUCache struct {
	entries *lru.Cache[cacheKey, []Attribute]
}

// NewLRUCache creates an LRU cache holding at most size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	entries, err := lru.New[cacheKey, []Attribute](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &LRUCache{entries: entries}, nil
}

// Get implements Cache.
func (c *LRUCache) Get(decl *TypeDecl, kind *Kind) ([]Attribute, bool) {
	return c.entries.Get(cacheKey{decl: decl, kind: kind})
}

// Set implements Cache.
func (c *LRUCache) Set(decl *TypeDecl, kind *Kind, attrs []Attribute) {
	c.entries.Add(cacheKey{decl: decl, kind: kind}, attrs)
}

// Len implements Cache.
func (c *LRUCache) Len() int {
	return c.entries.Len()
}

// Clear implements Cache.
func (c *LRUCache) Clear() {
	c.entries.Purge()
}

// NopCache never stores anything; every extraction introspects again.
type NopCache struct{}

// Get implements Cache.
func (NopCache) Get(*TypeDecl, *Kind) ([]Attribute, bool) { return nil, false }

// Set implements Cache.
func (NopCache) Set(*TypeDecl, *Kind, []Attribute) {}

// Len implements Cache.
func (NopCache) Len() int { return 0 }

// Clear implements Cache.
func (NopCache) Clear() {}
