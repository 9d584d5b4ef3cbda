// Package metadata resolves declarative metadata attached to classes and
// interfaces into ordered, queryable collections.
//
// # Overview
//
// Types are declared explicitly in a TypeRegistry, each with an optional
// superclass, implemented (or, for interfaces, extended) interfaces and the
// attributes declared directly on it. Option builders then ask "which task
// queue applies to this workflow?" without walking the hierarchy themselves.
//
// The package is organized in three layers:
//
//   - Extractor: attributes declared directly on one type, memoized per
//     (type, kind) in an injectable Cache.
//   - Reader: walks the superclass chain and the transitive interface set and
//     combines the results, either merging or overriding per kind.
//   - Collection: First/Has/Count queries over a resolved Mapping, with lazy
//     indexing of kinds that were not part of the resolution.
//
// # Precedence
//
// With DefaultResolveOptions, attributes of one kind are ordered as follows:
//
//  1. attributes declared on the type itself
//  2. attributes of each superclass, nearest first
//  3. attributes of every interface the type transitively implements, ordered
//     by descending number of ancestor interfaces
//
// Given
//
//	class Extended extends Abstract          #[TaskQueue("extended")]
//	abstract class Abstract implements IChild #[TaskQueue("abstract")]
//	interface IChild extends IParent          #[TaskQueue("interface")]
//	interface IParent extends IRoot           #[TaskQueue("parent")]
//	interface IRoot                           #[TaskQueue("root")]
//
// resolving Extended for TaskQueueKind yields extended, abstract, interface,
// parent, root.
//
// # Kinds
//
// Kinds form their own hierarchy. RetryPolicyKind and TaskQueueKind both
// specialize ForWorkflow and ForActivity, so resolving a workflow type for
// ForWorkflow collects both, and the resulting Collection can still be asked
// for TaskQueueKind alone.
//
// # Example Usage
//
//	types := metadata.NewTypeRegistry()
//	types.MustRegister(
//		metadata.TypeDecl{
//			Name:       "app.OrderWorkflow",
//			Kind:       metadata.Class,
//			Interfaces: []string{"app.Workflow"},
//			Attributes: []metadata.Attribute{metadata.TaskQueue{Name: "orders"}},
//		},
//		metadata.TypeDecl{
//			Name:       "app.Workflow",
//			Kind:       metadata.Interface,
//			Attributes: []metadata.Attribute{metadata.RetryPolicy{Attempts: 3}},
//		},
//	)
//
//	reader := metadata.NewReader(metadata.NewExtractor(types, metadata.NewMemoryCache(), nil))
//	attrs, err := reader.Collection("app.OrderWorkflow", []*metadata.Kind{metadata.ForWorkflow})
//	if err != nil {
//		return err
//	}
//	policy, _ := metadata.FirstOf[metadata.RetryPolicy](attrs, metadata.RetryPolicyKind)
//	fmt.Println(policy.Attempts) // 3
//
// # Errors
//
// Resolving an unregistered type returns an InvalidTypeError; a nil or unnamed
// kind returns an InvalidKindError. A type without matching attributes is not
// an error: Has reports false and Count reports 0.
package metadata
