package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// workspace chdirs into a temp dir holding a config with a file store and a rules file.
func workspace(t *testing.T) string {
	t.Helper()
	dir := testutils.SetupWorkspace(t, map[string]string{
		"turing.yaml": "log_level: error\ncolor: never\nstore:\n  driver: file\n  path: store\n",
		"rules.txt":   "A,0,1,R,A\nA,1,0,R,A\n",
	})
	t.Chdir(dir)
	return dir
}

func TestRun_DefaultRulesFile(t *testing.T) {
	workspace(t)

	out, err := execute(t, "run", "--print-rules=false", "--show-tape", "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Current state: A, Current symbol: One\n")
	assert.Contains(t, out, "Current state: Halt, Current symbol: Blank\n")
	assert.Contains(t, out, "The Turing machine has halted.\n")
	assert.Contains(t, out, "Steps: 5\n")
}

func TestRun_StepLimit(t *testing.T) {
	dir := workspace(t)
	loop := filepath.Join(dir, "loop.txt")
	require.NoError(t, os.WriteFile(loop, []byte("A,Blank,Blank,L,A\n"), 0644))

	_, err := execute(t, "run", loop, "--tape", "_", "--max-steps", "25", "--output", "quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step limit")
}

func TestPrograms_Lifecycle(t *testing.T) {
	workspace(t)

	out, err := execute(t, "programs", "save", "rules.txt", "flipper")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "flipper" (2 rules).`)

	out, err = execute(t, "programs", "list")
	require.NoError(t, err)
	assert.Equal(t, "busy-beaver\nclassic\nflipper\ninverter\nunary-increment\n", out)

	out, err = execute(t, "programs", "show", "flipper")
	require.NoError(t, err)
	assert.Contains(t, out, "name: flipper")

	out, err = execute(t, "validate", "flipper")
	require.NoError(t, err)
	assert.Contains(t, out, `Program "flipper" is valid`)

	out, err = execute(t, "graph", "flipper")
	require.NoError(t, err)
	assert.Contains(t, out, `A -- "1 / 0,R" --> A`)

	_, err = execute(t, "programs", "delete", "flipper")
	require.NoError(t, err)

	out, err = execute(t, "programs", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "flipper")
}

func TestRun_Builtin(t *testing.T) {
	workspace(t)

	out, err := execute(t, "run", "busy-beaver", "--tape", "_", "--print-rules=false", "--show-tape", "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Steps: 14\n")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "turing version ")
}
