package metadata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRegistry_Register(t *testing.T) {
	types := newStubRegistry(t)

	assert.Equal(t, len(stubDecls()), types.Len())
	assert.Equal(t, simpleClass, types.Names()[0])

	decl, ok := types.Lookup(abstractClass)
	require.True(t, ok)
	assert.Equal(t, Class, decl.Kind)
	assert.True(t, decl.Abstract)
	assert.Equal(t, []string{childInterface}, decl.Interfaces)

	_, ok = types.Lookup("stub.Missing")
	assert.False(t, ok)
}

func TestTypeRegistry_LookupReturnsCopy(t *testing.T) {
	types := newStubRegistry(t)

	decl, _ := types.Lookup(abstractClass)
	decl.Interfaces[0] = "MODIFIED"
	decl.Attributes[0] = TaskQueue{Name: "MODIFIED"}

	again, _ := types.Lookup(abstractClass)
	assert.Equal(t, childInterface, again.Interfaces[0])
	assert.Equal(t, TaskQueue{Name: "test-queue-abstract"}, again.Attributes[0])
}

func TestTypeRegistry_RegisterCopiesInput(t *testing.T) {
	attrs := []Attribute{TaskQueue{Name: "original"}}
	types := NewTypeRegistry().MustRegister(TypeDecl{Name: "T", Kind: Class, Attributes: attrs})

	attrs[0] = TaskQueue{Name: "MODIFIED"}

	decl, _ := types.Lookup("T")
	assert.Equal(t, TaskQueue{Name: "original"}, decl.Attributes[0])
}

func TestTypeRegistry_RegisterDuplicates(t *testing.T) {
	types := NewTypeRegistry()
	require.NoError(t, types.Register(TypeDecl{Name: "A", Kind: Class}))

	err := types.Register(TypeDecl{Name: "A", Kind: Class})
	var dup *DuplicateTypeError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "A", dup.Type)

	// A batch with an internal duplicate is rejected as a whole
	err = types.Register(TypeDecl{Name: "B", Kind: Class}, TypeDecl{Name: "B", Kind: Interface})
	require.Error(t, err)
	_, ok := types.Lookup("B")
	assert.False(t, ok)
	assert.Equal(t, 1, types.Len())
}

func TestTypeRegistry_RegisterInvalid(t *testing.T) {
	tests := []struct {
		name     string
		decl     TypeDecl
		wantKind bool
	}{
		{name: "empty name", decl: TypeDecl{Kind: Class}},
		{name: "interface with superclass", decl: TypeDecl{Name: "I", Kind: Interface, Parent: "C"}},
		{name: "abstract interface", decl: TypeDecl{Name: "I", Kind: Interface, Abstract: true}},
		{name: "unknown declaration kind", decl: TypeDecl{Name: "X", Kind: DeclKind(7)}},
		{name: "nil attribute", decl: TypeDecl{Name: "X", Kind: Class, Attributes: []Attribute{nil}}},
		{
			name:     "attribute with unnamed kind",
			decl:     TypeDecl{Name: "X", Kind: Class, Attributes: []Attribute{testAttr{kind: &Kind{}}}},
			wantKind: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTypeRegistry().Register(tt.decl)
			require.Error(t, err)
			if tt.wantKind {
				assert.True(t, IsInvalidKind(err))
			} else {
				assert.True(t, IsInvalidType(err))
			}
		})
	}
}

func TestTypeRegistry_MustRegisterPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewTypeRegistry().MustRegister(TypeDecl{Kind: Class})
	})
}
