package metadata

import (
	"go.uber.org/zap"
)

// ResolveOptions controls how a type hierarchy is traversed.
type ResolveOptions struct {
	// Merge concatenates attributes found at different hierarchy levels. When
	// false, the most specific non-empty sequence per kind wins.
	Merge bool
	// Inheritance walks the superclass chain and interfaces. When false only
	// the type's own declarations are returned.
	Inheritance bool
	// Interfaces includes every transitively implemented interface.
	Interfaces bool
}

// DefaultResolveOptions merges and follows both superclasses and interfaces.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		Merge:       true,
		Inheritance: true,
		Interfaces:  true,
	}
}

// Reader resolves the metadata visible on a type by walking its superclass
// chain and interface graph.
//
// Precedence with default options: the type's own declarations, then each
// superclass from nearest to farthest, then every transitively implemented
// interface ordered by descending number of ancestor interfaces.
//
// Example usage:
//
//	reader := metadata.NewReader(metadata.NewExtractor(types, nil, logger))
//	attrs, err := reader.Collection("app.OrderWorkflow", []*metadata.Kind{metadata.ForWorkflow})
//	if err != nil {
//		return err
//	}
//	if tq, ok := metadata.FirstOf[metadata.TaskQueue](attrs, metadata.TaskQueueKind); ok {
//		fmt.Println(tq.Name)
//	}
type Reader struct {
	types     *TypeRegistry
	extractor *Extractor
	logger    *zap.Logger
}

// NewReader creates a reader backed by extractor.
func NewReader(extractor *Extractor) *Reader {
	return &Reader{
		types:     extractor.types,
		extractor: extractor,
		logger:    extractor.logger,
	}
}

// Types returns the registry the reader resolves against.
func (r *Reader) Types() *TypeRegistry {
	return r.types
}

// Resolve resolves typeName with DefaultResolveOptions.
func (r *Reader) Resolve(typeName string, kinds []*Kind) (*Mapping, error) {
	return r.ResolveWith(typeName, kinds, DefaultResolveOptions())
}

// ResolveWith returns the attributes of the requested kinds visible on
// typeName. It fails with an InvalidTypeError when typeName is not registered
// and with an InvalidKindError when a kind is nil or unnamed.
//
// Referenced supertypes that are not registered, are opaque or have the wrong
// declaration kind (an interface as superclass, a class as interface) are
// treated as boundaries and contribute nothing. Cycles are skipped.
func (r *Reader) ResolveWith(typeName string, kinds []*Kind, opts ResolveOptions) (*Mapping, error) {
	if err := validateKinds(kinds); err != nil {
		return nil, err
	}
	decl := r.types.get(typeName)
	if decl == nil {
		return nil, &InvalidTypeError{Type: typeName, Reason: "not registered"}
	}

	result := r.resolve(decl, kinds, opts, make(map[string]bool))

	if ce := r.logger.Check(zap.DebugLevel, "resolved type metadata"); ce != nil {
		total := 0
		for _, k := range result.kinds {
			total += len(result.entries[k])
		}
		ce.Write(
			zap.String("type", typeName),
			zap.Strings("kinds", kindNames(kinds)),
			zap.Bool("merge", opts.Merge),
			zap.Int("attributes", total),
		)
	}

	return result, nil
}

// Collection resolves typeName with DefaultResolveOptions and wraps the result.
func (r *Reader) Collection(typeName string, kinds []*Kind) (*Collection, error) {
	return r.CollectionWith(typeName, kinds, DefaultResolveOptions())
}

// CollectionWith resolves typeName with opts and wraps the result.
func (r *Reader) CollectionWith(typeName string, kinds []*Kind, opts ResolveOptions) (*Collection, error) {
	m, err := r.ResolveWith(typeName, kinds, opts)
	if err != nil {
		return nil, err
	}
	return NewCollection(m), nil
}

func kindNames(kinds []*Kind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = kindName(k)
	}
	return names
}

// resolve walks decl depth-first. chain holds the classes already visited on
// the current superclass chain.
func (r *Reader) resolve(decl *TypeDecl, kinds []*Kind, opts ResolveOptions, chain map[string]bool) *Mapping {
	chain[decl.Name] = true
	result := r.extractor.extract(decl, kinds)

	if !opts.Inheritance || decl.Opaque {
		return result
	}

	// Interfaces are collected once from the requested type, so superclasses
	// are resolved without them.
	if decl.Kind == Class && decl.Parent != "" && !chain[decl.Parent] {
		if parent := r.types.get(decl.Parent); parent != nil && parent.Kind == Class {
			inherited := r.resolve(parent, kinds, ResolveOptions{
				Merge:       opts.Merge,
				Inheritance: true,
				Interfaces:  false,
			}, chain)
			result = combine(result, inherited, opts.Merge)
		}
	}

	if !opts.Interfaces {
		return result
	}

	for _, name := range r.types.sortedInterfaces(decl) {
		iface := r.types.get(name)
		if iface == nil {
			continue
		}
		// The interface list is already transitive, so each interface is a leaf.
		attrs := r.resolve(iface, kinds, ResolveOptions{Merge: opts.Merge}, chain)
		result = combine(result, attrs, opts.Merge)
	}

	return result
}
