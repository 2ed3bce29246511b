package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlProgram = `
name: flipper
description: flips the first cell and halts
initial_state: A
tape: "0100"
rules:
  - A,0,1,R,B
  - state: B
    read: 1
    write: 0
    move: R
    next: Halt
`

func TestReadProgram_YAML(t *testing.T) {
	p, err := loader.ReadProgram(strings.NewReader(yamlProgram), loader.FormatYAML, "fallback")
	require.NoError(t, err)

	assert.Equal(t, "flipper", p.Name)
	assert.Equal(t, "flips the first cell and halts", p.Description)
	assert.Equal(t, domain.StateA, p.InitialState)
	assert.Equal(t, "0100", domain.FormatTape(p.Tape))
	require.Len(t, p.Rules, 2)
	assert.Equal(t, "A,0,1,R,B", p.Rules[0].String())
	assert.Equal(t, "B,1,0,R,Halt", p.Rules[1].String())
}

func TestReadProgram_YAMLTapeList(t *testing.T) {
	doc := `
initial_state: B
tape: [0, 1, Blank]
rules: []
`
	p, err := loader.ReadProgram(strings.NewReader(doc), loader.FormatYAML, "list")
	require.NoError(t, err)
	assert.Equal(t, "list", p.Name, "name falls back to the file name")
	assert.Equal(t, domain.StateB, p.InitialState)
	assert.Equal(t, []domain.Symbol{domain.SymbolZero, domain.SymbolOne, domain.SymbolBlank}, p.Tape)
	assert.Empty(t, p.Rules)
}

func TestReadProgram_JSON(t *testing.T) {
	doc := `{
		"name": "json",
		"tape": ["1", 0],
		"rules": [{"state": "A", "read": 1, "write": "Blank", "move": "L", "next": "C"}]
	}`
	p, err := loader.ReadProgram(strings.NewReader(doc), loader.FormatJSON, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultInitialState, p.InitialState)
	assert.Equal(t, "10", domain.FormatTape(p.Tape))
	assert.Equal(t, "A,1,Blank,L,C", p.Rules[0].String())
}

func TestReadProgram_Defaults(t *testing.T) {
	p, err := loader.ReadProgram(strings.NewReader("rules: [\"A,0,1,R,B\"]\n"), loader.FormatYAML, "d")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTape, p.Tape)
	assert.Equal(t, domain.StateA, p.InitialState)
}

func TestReadProgram_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Bad state", "initial_state: Z\n"},
		{"Bad rule string", "rules: [\"A,0,1,R\"]\n"},
		{"Bad move", "rules: [{state: A, read: 0, write: 1, move: X, next: B}]\n"},
		{"Unknown key", "initial_state: A\nspeed: 3\n"},
		{"Empty tape", "tape: []\n"},
		{"Not YAML", "rules: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.ReadProgram(strings.NewReader(tt.doc), loader.FormatYAML, "x")
			assert.Error(t, err)
		})
	}
}

func TestReadProgram_UnquotedTape(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format loader.Format
	}{
		{"YAML leading zero", "tape: 0100\n", loader.FormatYAML},
		{"YAML single digit", "tape: 1\n", loader.FormatYAML},
		{"JSON number", `{"tape": 10}`, loader.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.ReadProgram(strings.NewReader(tt.doc), tt.format, "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "quote it")
		})
	}

	p, err := loader.ReadProgram(strings.NewReader("tape: \"0100\"\n"), loader.FormatYAML, "x")
	require.NoError(t, err)
	assert.Equal(t, "0100", domain.FormatTape(p.Tape))
}

func TestLoadProgram_ByExtension(t *testing.T) {
	dir := t.TempDir()

	rulesPath := filepath.Join(dir, "rules.txt")
	require.NoError(t, os.WriteFile(rulesPath, []byte("A,0,1,R,B\n"), 0644))
	yamlPath := filepath.Join(dir, "prog.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlProgram), 0644))

	t.Run("Text gets the default configuration", func(t *testing.T) {
		p, err := loader.LoadProgram(rulesPath)
		require.NoError(t, err)
		assert.Equal(t, "rules", p.Name)
		assert.Equal(t, domain.DefaultTape, p.Tape)
		assert.Len(t, p.Rules, 1)
	})

	t.Run("YAML", func(t *testing.T) {
		p, err := loader.LoadProgram(yamlPath)
		require.NoError(t, err)
		assert.Equal(t, "flipper", p.Name)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := loader.LoadProgram(filepath.Join(dir, "nope.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	p, err := loader.ReadProgram(strings.NewReader(yamlProgram), loader.FormatYAML, "")
	require.NoError(t, err)

	data, err := loader.MarshalYAML(p)
	require.NoError(t, err)

	back, err := loader.ReadProgram(strings.NewReader(string(data)), loader.FormatYAML, "")
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestLoadProgram_ShippedExamples(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "programs")

	bb, err := loader.LoadProgram(filepath.Join(dir, "busy-beaver.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "busy-beaver", bb.Name)
	assert.Equal(t, []domain.Symbol{domain.SymbolBlank}, bb.Tape)
	require.Len(t, bb.Rules, 6)
	assert.Equal(t, "C,1,1,L,A", bb.Rules[5].String())

	inv, err := loader.LoadProgram(filepath.Join(dir, "rules.txt"))
	require.NoError(t, err)
	assert.Equal(t, "rules", inv.Name)
	assert.Equal(t, domain.DefaultTape, inv.Tape)
	assert.Len(t, inv.Rules, 3)
}
