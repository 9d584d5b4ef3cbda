package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDeclarations = `
types:
  - name: app.Workflow
    kind: interface
    attributes:
      - kind: retry_policy
        attempts: 3
        init_interval: 1s

  - name: app.BaseWorkflow
    kind: class
    abstract: true
    interfaces: [app.Workflow]
    attributes:
      - kind: task_queue
        name: default

  - name: app.OrderWorkflow
    kind: class
    parent: app.BaseWorkflow
    attributes:
      - kind: task_queue
        name: orders

  - name: app.ChargeActivity
    kind: interface
    attributes:
      - kind: task_queue
        name: payments
`

// project creates a working directory holding decls.yaml and changes into it.
func project(t *testing.T, declarations string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "decls.yaml"), []byte(declarations), 0o644))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

// runSugar executes the root command with args and returns its combined output.
func runSugar(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(newEnv())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-color"))

	err := cmd.Execute()
	return out.String(), err
}

// withPrompt replaces the interactive prompt for one test.
func withPrompt(t *testing.T, isInteractive bool, choice string) {
	t.Helper()
	oldInteractive, oldSelect := interactive, selectType
	interactive = func() bool { return isInteractive }
	selectType = func(string, []string) (string, error) { return choice, nil }
	t.Cleanup(func() {
		interactive, selectType = oldInteractive, oldSelect
	})
}
