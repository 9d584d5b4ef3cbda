package metadata

import (
	"slices"

	"go.uber.org/zap"
)

// Extractor returns the attributes declared directly on a single type, without
// any traversal. Results are memoized per (type, kind) in a Cache.
type Extractor struct {
	types  *TypeRegistry
	cache  Cache
	logger *zap.Logger
}

// NewExtractor creates an extractor over types. A nil cache defaults to a new
// MemoryCache and a nil logger to a no-op logger.
func NewExtractor(types *TypeRegistry, cache Cache, logger *zap.Logger) *Extractor {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		types:  types,
		cache:  cache,
		logger: logger,
	}
}

// Extract returns, for each requested kind, the attributes declared directly on
// typeName whose kind is-a the requested kind, in declaration order. Kinds
// without matches map to an empty sequence. Opaque types yield an empty
// mapping.
func (e *Extractor) Extract(typeName string, kinds []*Kind) (*Mapping, error) {
	if err := validateKinds(kinds); err != nil {
		return nil, err
	}
	decl := e.types.get(typeName)
	if decl == nil {
		return nil, &InvalidTypeError{Type: typeName, Reason: "not registered"}
	}
	return e.extract(decl, kinds), nil
}

// Cache returns the cache backing the extractor.
func (e *Extractor) Cache() Cache {
	return e.cache
}

func (e *Extractor) extract(decl *TypeDecl, kinds []*Kind) *Mapping {
	result := NewMapping()
	if decl.Opaque {
		return result
	}

	for _, kind := range kinds {
		if attrs, ok := e.cache.Get(decl, kind); ok {
			result.set(kind, attrs)
			continue
		}

		var matched []Attribute
		for _, attr := range decl.Attributes {
			if kind.IsAssignableFrom(attr.Kind()) {
				matched = append(matched, attr)
			}
		}
		matched = slices.Clip(matched)

		e.cache.Set(decl, kind, matched)
		if ce := e.logger.Check(zap.DebugLevel, "extracted attributes"); ce != nil {
			ce.Write(
				zap.String("type", decl.Name),
				zap.Stringer("kind", kind),
				zap.Int("count", len(matched)),
			)
		}
		result.set(kind, matched)
	}

	return result
}
