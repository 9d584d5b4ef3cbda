package metadata

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Type names mirroring a small attributed hierarchy:
//
//	Extended extends Abstract implements Interface extends Parent extends ParentParent
const (
	simpleClass        = "stub.SimpleClass"
	extendedClass      = "stub.ExtendedAttributed"
	abstractClass      = "stub.AbstractAttributed"
	childInterface     = "stub.InterfaceAttributed"
	parentInterface    = "stub.ParentInterfaceAttributed"
	rootInterface      = "stub.ParentParentInterfaceAttributed"
	unattributedClass  = "stub.Unattributed"
	builtinStringable  = "Stringable"
	extendsOpaqueClass = "stub.ExtendsOpaque"
)

// testAttr is an attribute of an arbitrary kind, for kind hierarchies built in tests.
type testAttr struct {
	kind  *Kind
	value string
}

func (a testAttr) Kind() *Kind { return a.kind }

func stubDecls() []TypeDecl {
	return []TypeDecl{
		{
			Name:       simpleClass,
			Kind:       Class,
			Attributes: []Attribute{TaskQueue{Name: "test-queue"}},
		},
		{
			Name:       extendedClass,
			Kind:       Class,
			Parent:     abstractClass,
			Attributes: []Attribute{TaskQueue{Name: "test-queue-extended"}},
		},
		{
			Name:       abstractClass,
			Kind:       Class,
			Abstract:   true,
			Interfaces: []string{childInterface},
			Attributes: []Attribute{TaskQueue{Name: "test-queue-abstract"}},
		},
		{
			Name:       childInterface,
			Kind:       Interface,
			Interfaces: []string{parentInterface},
			Attributes: []Attribute{TaskQueue{Name: "test-queue-interface"}},
		},
		{
			Name:       parentInterface,
			Kind:       Interface,
			Interfaces: []string{rootInterface},
			Attributes: []Attribute{TaskQueue{Name: "test-queue-parent-interface"}},
		},
		{
			Name:       rootInterface,
			Kind:       Interface,
			Attributes: []Attribute{TaskQueue{Name: "test-queue-parent-parent-interface"}},
		},
		{
			Name: unattributedClass,
			Kind: Class,
		},
		{
			Name:       builtinStringable,
			Kind:       Interface,
			Opaque:     true,
			Attributes: []Attribute{TaskQueue{Name: "never-visible"}},
		},
		{
			Name:       extendsOpaqueClass,
			Kind:       Class,
			Interfaces: []string{builtinStringable},
			Attributes: []Attribute{TaskQueue{Name: "test-queue-opaque-child"}},
		},
	}
}

func newStubRegistry(t testing.TB) *TypeRegistry {
	t.Helper()
	types := NewTypeRegistry()
	require.NoError(t, types.Register(stubDecls()...))
	return types
}

func newReader(types *TypeRegistry) *Reader {
	return NewReader(NewExtractor(types, NewMemoryCache(), nil))
}

func queueNames(attrs []Attribute) []string {
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if tq, ok := a.(TaskQueue); ok {
			names = append(names, tq.Name)
		}
	}
	return names
}

func testValues(attrs []Attribute) []string {
	values := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if ta, ok := a.(testAttr); ok {
			values = append(values, ta.value)
		}
	}
	return values
}

// countingCache records how often entries are written.
type countingCache struct {
	*MemoryCache
	mu   sync.Mutex
	sets int
}

func newCountingCache() *countingCache {
	return &countingCache{MemoryCache: NewMemoryCache()}
}

func (c *countingCache) Set(decl *TypeDecl, kind *Kind, attrs []Attribute) {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	c.MemoryCache.Set(decl, kind, attrs)
}

func (c *countingCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}
