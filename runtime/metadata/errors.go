package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidTypeError is returned when a type name cannot be introspected at all.
type InvalidTypeError struct {
	Type   string
	Reason string
}

func (e *InvalidTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid type %q", e.Type)
	}
	return fmt.Sprintf("invalid type %q: %s", e.Type, e.Reason)
}

// InvalidKindError is returned when a requested kind is not a legal metadata kind.
type InvalidKindError struct {
	Kind   string
	Reason string
}

func (e *InvalidKindError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid metadata kind %q", e.Kind)
	}
	return fmt.Sprintf("invalid metadata kind %q: %s", e.Kind, e.Reason)
}

// IsInvalidType checks if err is, or wraps, an InvalidTypeError.
func IsInvalidType(err error) bool {
	var target *InvalidTypeError
	return errors.As(err, &target)
}

// IsInvalidKind checks if err is, or wraps, an InvalidKindError.
func IsInvalidKind(err error) bool {
	var target *InvalidKindError
	return errors.As(err, &target)
}

// DuplicateTypeError is returned when a type name is registered twice.
type DuplicateTypeError struct {
	Type string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("type %q already registered", e.Type)
}

// ReferenceError describes a declaration that refers to a missing or
// mismatched type.
type ReferenceError struct {
	Type      string
	Reference string
	Relation  string // "extends" or "implements"
	Reason    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("type %q %s %q: %s", e.Type, e.Relation, e.Reference, e.Reason)
}

// CycleError describes a cycle in the superclass chain or interface graph.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "inheritance cycle: " + strings.Join(e.Path, " -> ")
}

func kindName(k *Kind) string {
	if k == nil {
		return "<nil>"
	}
	return k.name
}

func validateKinds(kinds []*Kind) error {
	for _, k := range kinds {
		if !k.valid() {
			return &InvalidKindError{Kind: kindName(k), Reason: "kind must be created with NewKind and named"}
		}
	}
	return nil
}
