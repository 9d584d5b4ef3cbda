package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCommand_Table(t *testing.T) {
	project(t, testDeclarations)

	out, err := runSugar(t, "resolve", "app.OrderWorkflow", "-d", "decls.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "app.OrderWorkflow\n")
	assert.Contains(t, out, "REQUESTED")

	orders := strings.Index(out, "orders")
	def := strings.Index(out, "default")
	retry := strings.Index(out, "attempts=3 init=1s")
	require.True(t, orders > 0 && def > 0 && retry > 0, out)
	assert.Less(t, orders, def, "own declarations come first")
	assert.Less(t, def, retry, "superclass before interface")
	assert.NotContains(t, out, "disabled:")
}

func TestResolveCommand_Switches(t *testing.T) {
	project(t, testDeclarations)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "no merge keeps nearest",
			args:     []string{"--kind", "task_queue", "--no-merge"},
			contains: []string{"orders", "disabled: merge"},
			excludes: []string{"default"},
		},
		{
			name:     "no inheritance",
			args:     []string{"--no-inheritance"},
			contains: []string{"orders"},
			excludes: []string{"default", "attempts"},
		},
		{
			name:     "no interfaces",
			args:     []string{"--no-interfaces"},
			contains: []string{"orders", "default"},
			excludes: []string{"attempts"},
		},
		{
			name:     "activity kind",
			args:     []string{"--kind", "activity", "--no-inheritance", "--no-merge"},
			contains: []string{"orders"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"resolve", "app.OrderWorkflow", "-d", "decls.yaml"}, tt.args...)
			out, err := runSugar(t, args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestResolveCommand_NoMatches(t *testing.T) {
	project(t, testDeclarations+`
  - name: app.Plain
    kind: class
`)

	out, err := runSugar(t, "resolve", "app.Plain", "-d", "decls.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}

func TestResolveCommand_JSON(t *testing.T) {
	project(t, testDeclarations)

	out, err := runSugar(t, "resolve", "app.OrderWorkflow", "-d", "decls.yaml", "--format", "json",
		"--kind", "task_queue", "--kind", "retry_policy")
	require.NoError(t, err)

	var got struct {
		Type  string `json:"type"`
		Merge bool   `json:"merge"`
		Kinds []struct {
			Kind       string `json:"kind"`
			Attributes []struct {
				Kind    string         `json:"kind"`
				Summary string         `json:"summary"`
				Value   map[string]any `json:"value"`
			} `json:"attributes"`
		} `json:"kinds"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "app.OrderWorkflow", got.Type)
	assert.True(t, got.Merge)
	require.Len(t, got.Kinds, 2)
	assert.Equal(t, "task_queue", got.Kinds[0].Kind)
	require.Len(t, got.Kinds[0].Attributes, 2)
	assert.Equal(t, "orders", got.Kinds[0].Attributes[0].Value["name"])
	assert.Equal(t, "retry_policy", got.Kinds[1].Kind)
	require.Len(t, got.Kinds[1].Attributes, 1)
	assert.Equal(t, float64(3), got.Kinds[1].Attributes[0].Value["attempts"])
}

func TestResolveCommand_Errors(t *testing.T) {
	project(t, testDeclarations)

	_, err := runSugar(t, "resolve", "app.OrderWorkfow", "-d", "decls.yaml")
	var typeErr *unknownTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Contains(t, typeErr.candidates, "app.OrderWorkflow")

	_, err = runSugar(t, "resolve", "app.OrderWorkflow", "-d", "decls.yaml", "--kind", "task_que")
	var kindErr *unknownKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, "task_que", kindErr.name)

	_, err = runSugar(t, "resolve", "app.OrderWorkflow", "-d", "missing.yaml")
	var declErr *declarationError
	assert.ErrorAs(t, err, &declErr)
}

func TestResolveCommand_Prompt(t *testing.T) {
	project(t, testDeclarations)

	withPrompt(t, false, "")
	_, err := runSugar(t, "resolve", "-d", "decls.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a type name is required")

	withPrompt(t, true, "app.OrderWorkflow")
	out, err := runSugar(t, "resolve", "-d", "decls.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "orders")
}
