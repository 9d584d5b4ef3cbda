package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesCommand(t *testing.T) {
	project(t, testDeclarations)

	out, err := runSugar(t, "types", "-d", "decls.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "app.OrderWorkflow")
	assert.Contains(t, out, "abstract class")
	assert.NotContains(t, out, "Resolution order")
}

func TestTypesCommand_Order(t *testing.T) {
	project(t, testDeclarations)

	out, err := runSugar(t, "types", "-d", "decls.yaml", "--order")
	require.NoError(t, err)

	assert.Contains(t, out, "Resolution order")
	assert.Contains(t, out, "app.OrderWorkflow → app.BaseWorkflow → app.Workflow")
}

func TestTypesCommand_JSON(t *testing.T) {
	project(t, testDeclarations)

	out, err := runSugar(t, "types", "-d", "decls.yaml", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Types []typeView `json:"types"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Types, 4)

	byName := make(map[string]typeView)
	for _, tv := range got.Types {
		byName[tv.Name] = tv
	}
	assert.Equal(t, "app.BaseWorkflow", byName["app.OrderWorkflow"].Parent)
	assert.Equal(t, []string{"task_queue: orders"}, byName["app.OrderWorkflow"].Attributes)
	assert.Equal(t, "interface", byName["app.ChargeActivity"].Kind)
	assert.True(t, byName["app.BaseWorkflow"].Abstract)
}

func TestTypesCommand_DanglingReference(t *testing.T) {
	project(t, testDeclarations+`
  - name: app.Orphan
    kind: class
    parent: app.Missing
`)

	out, err := runSugar(t, "types", "-d", "decls.yaml")
	require.Error(t, err)

	var declErr *declarationError
	require.ErrorAs(t, err, &declErr)
	require.NotEmpty(t, declErr.problems)
	assert.Contains(t, declErr.problems[0], "app.Missing")
	assert.Contains(t, out, "app.Orphan", "the list is still printed")

	// Reference problems do not block resolution
	out, err = runSugar(t, "resolve", "app.Orphan", "-d", "decls.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}
