package metadata

import (
	"fmt"
	"sync"
)

// TypeRegistry holds the type declarations visible to the resolver.
// Declarations are registered at initialization time and never change
// afterwards; lookups are safe for concurrent use.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]*TypeDecl
	order []string
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types: make(map[string]*TypeDecl),
	}
}

// Register adds declarations to the registry. Either all declarations are
// added or, on error, none of them.
func (r *TypeRegistry) Register(decls ...TypeDecl) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make(map[string]bool, len(decls))
	for _, d := range decls {
		if err := checkDecl(d); err != nil {
			return err
		}
		if _, exists := r.types[d.Name]; exists || pending[d.Name] {
			return &DuplicateTypeError{Type: d.Name}
		}
		pending[d.Name] = true
	}

	for _, d := range decls {
		r.types[d.Name] = d.clone()
		r.order = append(r.order, d.Name)
	}
	return nil
}

// MustRegister is like Register but panics on error. It is intended for
// static declaration tables built in init functions.
func (r *TypeRegistry) MustRegister(decls ...TypeDecl) *TypeRegistry {
	if err := r.Register(decls...); err != nil {
		panic(err)
	}
	return r
}

func checkDecl(d TypeDecl) error {
	if d.Name == "" {
		return &InvalidTypeError{Type: d.Name, Reason: "declaration has no name"}
	}
	switch d.Kind {
	case Class:
	case Interface:
		if d.Parent != "" {
			return &InvalidTypeError{Type: d.Name, Reason: "interfaces cannot extend a class"}
		}
		if d.Abstract {
			return &InvalidTypeError{Type: d.Name, Reason: "interfaces cannot be abstract"}
		}
	default:
		return &InvalidTypeError{Type: d.Name, Reason: fmt.Sprintf("unknown declaration kind %d", d.Kind)}
	}
	for i, a := range d.Attributes {
		if a == nil {
			return &InvalidTypeError{Type: d.Name, Reason: fmt.Sprintf("attribute %d is nil", i)}
		}
		if !a.Kind().valid() {
			return &InvalidKindError{Kind: kindName(a.Kind()), Reason: fmt.Sprintf("attribute %d on %s", i, d.Name)}
		}
	}
	return nil
}

// Lookup returns a copy of the named declaration.
func (r *TypeRegistry) Lookup(name string) (TypeDecl, bool) {
	d := r.get(name)
	if d == nil {
		return TypeDecl{}, false
	}
	return *d.clone(), true
}

// Names returns the registered type names in registration order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered declarations.
func (r *TypeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// get returns the stored declaration. Stored declarations are never mutated,
// so callers may read them without holding the lock.
func (r *TypeRegistry) get(name string) *TypeDecl {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[name]
}
