package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/stretchr/testify/require"
)

// SetupWorkspace creates a temporary directory holding files (relative path
// to content) and returns its absolute path.
// It fails the test immediately on error.
func SetupWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	}
	return absPath
}

// MustRules parses rule lines in the rules file format.
func MustRules(t *testing.T, lines ...string) []domain.Rule {
	t.Helper()

	list, err := loader.ParseRules(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err, "Failed to parse rules")
	return list
}

// Program builds a program named name over tape (compact form such as "0100")
// from rule lines.
func Program(t *testing.T, name, tape string, lines ...string) *domain.Program {
	t.Helper()

	symbols, err := loader.ParseTape(tape)
	require.NoError(t, err, "Failed to parse tape")
	return &domain.Program{
		Name:         name,
		InitialState: domain.DefaultInitialState,
		Tape:         symbols,
		Rules:        MustRules(t, lines...),
	}
}
