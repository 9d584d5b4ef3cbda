package declfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.yaml", FormatYAML, false},
		{"a.YML", FormatYAML, false},
		{"dir/a.toml", FormatTOML, false},
		{"a.json", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoader_LoadFile_YAML(t *testing.T) {
	decls, err := NewLoader(nil).LoadFile(filepath.Join("testdata", "workflows.yaml"))
	require.NoError(t, err)
	require.Len(t, decls, 3)

	want := metadata.TypeDecl{
		Name: "app.Workflow",
		Kind: metadata.Interface,
		Attributes: []metadata.Attribute{
			metadata.RetryPolicy{
				Attempts:      3,
				InitInterval:  time.Second,
				MaxInterval:   time.Minute,
				Backoff:       2,
				NonRetryables: []string{"InvalidArgument", "NotFound"},
			},
		},
	}
	if diff := cmp.Diff(want, decls[0]); diff != "" {
		t.Errorf("decl mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, decls[1].Abstract)
	assert.Equal(t, []string{"app.Workflow"}, decls[1].Interfaces)
	assert.Equal(t, "app.BaseWorkflow", decls[2].Parent)
	assert.Equal(t, []metadata.Attribute{metadata.TaskQueue{Name: "orders"}}, decls[2].Attributes)
}

func TestLoader_LoadFile_TOML(t *testing.T) {
	decls, err := NewLoader(nil).LoadFile(filepath.Join("testdata", "activities.toml"))
	require.NoError(t, err)
	require.Len(t, decls, 2)

	assert.Equal(t, metadata.Interface, decls[0].Kind)
	assert.Equal(t, []metadata.Attribute{metadata.TaskQueue{Name: "activities"}}, decls[0].Attributes)
	assert.Equal(t, []metadata.Attribute{
		metadata.RetryPolicy{Attempts: 5, InitInterval: 500 * time.Millisecond},
	}, decls[1].Attributes)
}

func TestLoader_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing name",
			doc:     "types:\n  - kind: class\n",
			wantErr: "types[0].name is required",
		},
		{
			name:    "bad kind",
			doc:     "types:\n  - name: A\n    kind: struct\n",
			wantErr: `types[0].kind must be one of [class interface], got "struct"`,
		},
		{
			name:    "interface with parent",
			doc:     "types:\n  - name: A\n    kind: interface\n    parent: B\n",
			wantErr: "types[0].parent is not allowed",
		},
		{
			name:    "duplicate interface",
			doc:     "types:\n  - name: A\n    kind: class\n    interfaces: [I, J, I]\n",
			wantErr: "types[0].interfaces lists the same name more than once",
		},
		{
			name:    "empty interface name",
			doc:     "types:\n  - name: A\n    kind: class\n    interfaces: [\"\"]\n",
			wantErr: "types[0].interfaces[0] is required",
		},
		{
			name:    "unknown type field",
			doc:     "types:\n  - name: A\n    kind: class\n    extends: B\n",
			wantErr: "invalid YAML",
		},
		{
			name:    "attribute without kind",
			doc:     "types:\n  - name: A\n    kind: class\n    attributes:\n      - name: q\n",
			wantErr: "attribute has no kind",
		},
		{
			name:    "unknown attribute kind",
			doc:     "types:\n  - name: A\n    kind: class\n    attributes:\n      - kind: deadline\n",
			wantErr: `invalid metadata kind "deadline"`,
		},
		{
			name:    "unknown attribute field",
			doc:     "types:\n  - name: A\n    kind: class\n    attributes:\n      - kind: task_queue\n        queue: q\n",
			wantErr: "failed to decode task_queue",
		},
		{
			name:    "bad duration",
			doc:     "types:\n  - name: A\n    kind: class\n    attributes:\n      - kind: retry_policy\n        init_interval: soon\n",
			wantErr: "failed to decode retry_policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(nil).Parse([]byte(tt.doc), FormatYAML)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoader_Parse_Empty(t *testing.T) {
	decls, err := NewLoader(nil).Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestLoader_Parse_UnknownKindIsInvalidKind(t *testing.T) {
	_, err := NewLoader(nil).Parse([]byte("types:\n  - name: A\n    kind: class\n    attributes:\n      - kind: deadline\n"), FormatYAML)
	assert.True(t, metadata.IsInvalidKind(err))
}

type deadline struct {
	After time.Duration `mapstructure:"after"`
}

var deadlineKind = metadata.NewKind("deadline", metadata.ForActivity)

func (deadline) Kind() *metadata.Kind { return deadlineKind }

func TestLoader_RegisterDecoder(t *testing.T) {
	l := NewLoader(nil)
	require.NoError(t, l.RegisterDecoder(deadlineKind, Decoder[deadline]()))

	decls, err := l.Parse([]byte(`
types:
  - name: app.Slow
    kind: class
    attributes:
      - kind: deadline
        after: 2h
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []metadata.Attribute{deadline{After: 2 * time.Hour}}, decls[0].Attributes)

	k, err := l.Kinds().Lookup("deadline")
	require.NoError(t, err)
	assert.Same(t, deadlineKind, k)

	assert.Error(t, l.RegisterDecoder(deadlineKind, nil))
	assert.Error(t, l.RegisterDecoder(metadata.NewKind("task_queue"), Decoder[deadline]()),
		"a different kind cannot take a built-in name")
}

func TestLoader_Load(t *testing.T) {
	registry, err := NewLoader(nil).Load("testdata")
	require.NoError(t, err)
	assert.Equal(t, 5, registry.Len())

	reader := metadata.NewReader(metadata.NewExtractor(registry, nil, nil))
	attrs, err := reader.Collection("app.OrderWorkflow", []*metadata.Kind{metadata.ForWorkflow})
	require.NoError(t, err)

	policy, ok := metadata.FirstOf[metadata.RetryPolicy](attrs, metadata.RetryPolicyKind)
	require.True(t, ok)
	assert.Equal(t, 3, policy.Attempts)

	queue, ok := metadata.FirstOf[metadata.TaskQueue](attrs, metadata.TaskQueueKind)
	require.True(t, ok)
	assert.Equal(t, "orders", queue.Name)
}

func TestLoader_Load_Errors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("duplicate across files", func(t *testing.T) {
		a := write("a.yaml", "types:\n  - name: A\n    kind: class\n")
		b := write("b.yaml", "types:\n  - name: A\n    kind: class\n")
		_, err := NewLoader(nil).Load(a, b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "b.yaml")
	})

	t.Run("dangling reference", func(t *testing.T) {
		c := write("c.yaml", "types:\n  - name: C\n    kind: class\n    parent: Missing\n")
		registry, err := NewLoader(nil).Load(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing")
		require.NotNil(t, registry, "the registry is returned for inspection")
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("no match", func(t *testing.T) {
		_, err := NewLoader(nil).Load(filepath.Join(dir, "*.toml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no declaration files match")
	})
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.toml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	paths, err := Expand(dir, filepath.Join(dir, "*.yaml"), filepath.Join(dir, "a.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.yaml")}, paths)
}
