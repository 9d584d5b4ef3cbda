package metadata

// Kind identifies a category of declarative metadata (a retry policy, a task
// queue name, ...). A kind may specialize one or more parent kinds; an attribute
// of a specialized kind satisfies queries for any of its ancestors.
//
// Kinds are compared by identity. Create each kind once with NewKind and share
// the returned pointer.
type Kind struct {
	name    string
	parents []*Kind
}

// NewKind creates a kind that specializes the given parents.
func NewKind(name string, parents ...*Kind) *Kind {
	k := &Kind{name: name}
	for _, p := range parents {
		if p != nil {
			k.parents = append(k.parents, p)
		}
	}
	return k
}

// Name returns the kind name.
func (k *Kind) Name() string {
	if k == nil {
		return ""
	}
	return k.name
}

// String implements fmt.Stringer.
func (k *Kind) String() string {
	if k == nil {
		return "<nil>"
	}
	return k.name
}

// Parents returns the kinds this kind directly specializes.
func (k *Kind) Parents() []*Kind {
	if k == nil {
		return nil
	}
	parents := make([]*Kind, len(k.parents))
	copy(parents, k.parents)
	return parents
}

// IsAssignableFrom reports whether an attribute of kind other satisfies a query
// for k, i.e. other is k or transitively specializes k.
func (k *Kind) IsAssignableFrom(other *Kind) bool {
	if k == nil || other == nil {
		return false
	}
	if k == other {
		return true
	}
	for _, p := range other.parents {
		if k.IsAssignableFrom(p) {
			return true
		}
	}
	return false
}

func (k *Kind) valid() bool {
	return k != nil && k.name != ""
}

// Attribute is one declared, immutable metadata value.
type Attribute interface {
	Kind() *Kind
}

// DeclKind distinguishes classes from interfaces.
type DeclKind int

const (
	Class DeclKind = iota
	Interface
)

// String implements fmt.Stringer.
func (k DeclKind) String() string {
	switch k {
	case Class:
		return "class"
	case Interface:
		return "interface"
	default:
		return "unknown"
	}
}

// TypeDecl is a class or interface declaration together with the attributes
// declared directly on it.
type TypeDecl struct {
	Name     string   // Fully-qualified type name
	Kind     DeclKind // Class or Interface
	Abstract bool     // Informational only, abstract classes resolve like any class
	Opaque   bool     // Opaque types cannot be introspected and contribute nothing

	// Parent is the superclass name. Only classes have one.
	Parent string
	// Interfaces lists implemented interfaces for a class, or extended
	// interfaces for an interface, in declaration order.
	Interfaces []string
	// Attributes are the directly declared attributes in declaration order.
	Attributes []Attribute
}

func (d TypeDecl) clone() *TypeDecl {
	c := d
	c.Interfaces = append([]string(nil), d.Interfaces...)
	c.Attributes = append([]Attribute(nil), d.Attributes...)
	return &c
}
