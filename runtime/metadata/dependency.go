package metadata

import (
	"errors"
	"sort"
)

// Interfaces returns every interface the named type transitively implements:
// its own interfaces, their ancestors and the interfaces inherited through the
// superclass chain. For an interface the result holds its ancestor interfaces.
// Names are returned in discovery order without duplicates. Registered classes
// named as interfaces are left out, and a superclass chain ends at a declared
// interface.
func (r *TypeRegistry) Interfaces(name string) ([]string, error) {
	decl := r.get(name)
	if decl == nil {
		return nil, &InvalidTypeError{Type: name, Reason: "not registered"}
	}
	return r.collectInterfaces(decl), nil
}

// SortedInterfaces returns Interfaces(name) ordered by descending number of
// ancestor interfaces, so the most derived interfaces come first. Ties keep
// discovery order.
func (r *TypeRegistry) SortedInterfaces(name string) ([]string, error) {
	decl := r.get(name)
	if decl == nil {
		return nil, &InvalidTypeError{Type: name, Reason: "not registered"}
	}
	return r.sortedInterfaces(decl), nil
}

func (r *TypeRegistry) sortedInterfaces(decl *TypeDecl) []string {
	names := r.collectInterfaces(decl)
	weights := make(map[string]int, len(names))
	for _, n := range names {
		weights[n] = r.ancestorCount(n)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return weights[names[i]] > weights[names[j]]
	})
	return names
}

// ancestorCount is the number of interfaces an interface transitively extends.
// Unknown and opaque interfaces have none that can be seen.
func (r *TypeRegistry) ancestorCount(name string) int {
	decl := r.get(name)
	if decl == nil || decl.Opaque {
		return 0
	}
	return len(r.collectInterfaces(decl))
}

func (r *TypeRegistry) collectInterfaces(decl *TypeDecl) []string {
	var result []string
	seen := map[string]bool{decl.Name: true}

	// Classes listed as interfaces are boundaries, like unregistered names.
	var visit func(name string)
	visit = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true

		iface := r.get(name)
		if iface != nil && iface.Kind != Interface {
			return
		}
		result = append(result, name)
		if iface == nil || iface.Opaque {
			return
		}
		for _, parent := range iface.Interfaces {
			visit(parent)
		}
	}

	classes := make(map[string]bool)
	for current := decl; current != nil && !current.Opaque && !classes[current.Name]; {
		classes[current.Name] = true
		for _, name := range current.Interfaces {
			visit(name)
		}
		if current.Kind != Class || current.Parent == "" {
			break
		}
		current = r.get(current.Parent)
		if current != nil && current.Kind != Class {
			break
		}
	}

	return result
}

// Validate checks that every referenced type is registered with the right
// declaration kind and that neither the superclass chains nor the interface
// graph contain cycles. All problems are reported together.
func (r *TypeRegistry) Validate() error {
	var errs []error

	for _, name := range r.Names() {
		decl := r.get(name)

		if decl.Parent != "" {
			parent := r.get(decl.Parent)
			switch {
			case parent == nil:
				errs = append(errs, &ReferenceError{Type: name, Reference: decl.Parent, Relation: "extends", Reason: "type not registered"})
			case parent.Kind != Class:
				errs = append(errs, &ReferenceError{Type: name, Reference: decl.Parent, Relation: "extends", Reason: "superclass is an interface"})
			}
		}

		for _, ref := range decl.Interfaces {
			iface := r.get(ref)
			switch {
			case iface == nil:
				errs = append(errs, &ReferenceError{Type: name, Reference: ref, Relation: "implements", Reason: "type not registered"})
			case iface.Kind != Interface:
				errs = append(errs, &ReferenceError{Type: name, Reference: ref, Relation: "implements", Reason: "not an interface"})
			}
		}
	}

	for _, cycle := range r.DetectCycles() {
		errs = append(errs, &CycleError{Path: cycle})
	}

	return errors.Join(errs...)
}

// DetectCycles detects cycles across superclass and interface edges.
func (r *TypeRegistry) DetectCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, name := range r.Names() {
		if !visited[name] {
			r.findCycles(name, visited, recStack, nil, &cycles)
		}
	}

	return cycles
}

// findCycles performs DFS to find cycles
func (r *TypeRegistry) findCycles(name string, visited, recStack map[string]bool, path []string, cycles *[][]string) {
	visited[name] = true
	recStack[name] = true
	path = append(path, name)

	decl := r.get(name)
	if decl != nil {
		edges := decl.Interfaces
		if decl.Parent != "" {
			edges = append([]string{decl.Parent}, edges...)
		}

		for _, next := range edges {
			if recStack[next] {
				// Extract the cycle from path
				for i, n := range path {
					if n == next {
						cycle := make([]string, len(path)-i, len(path)-i+1)
						copy(cycle, path[i:])
						*cycles = append(*cycles, append(cycle, next))
						break
					}
				}
			} else if !visited[next] {
				r.findCycles(next, visited, recStack, path, cycles)
			}
		}
	}

	recStack[name] = false
}
