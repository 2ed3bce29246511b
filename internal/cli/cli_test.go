package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	cfg.Store.Path = t.TempDir()
	cfg.Color = "never"
	return &App{Config: cfg, Logger: logging.NewNop()}
}

func flip(t *testing.T) *domain.Program {
	return testutils.Program(t, "flip", "0", "A,0,1,R,Halt")
}

func TestBootstrap_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\nstore: {driver: file}\n"), 0644))

	app, err := Bootstrap(Flags{
		ConfigPath: path,
		LogLevel:   "debug",
		LogFile:    filepath.Join(dir, "turing.log"),
		Store:      "memory",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, "debug", app.Config.LogLevel)
	assert.Equal(t, config.DriverMemory, app.Config.Store.Driver)

	app.Logger.Info("hello")
	require.NoError(t, app.Close())
	data, err := os.ReadFile(filepath.Join(dir, "turing.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestBootstrap_Errors(t *testing.T) {
	_, err := Bootstrap(Flags{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = Bootstrap(Flags{ConfigPath: writeConfig(t, ""), LogLevel: "loud"})
	assert.Error(t, err)

	_, err = Bootstrap(Flags{ConfigPath: writeConfig(t, ""), Store: "etcd"})
	assert.Error(t, err)
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "turing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestOpenStore(t *testing.T) {
	app := testApp(t)

	store, err := app.OpenStore()
	require.NoError(t, err)
	p, err := store.Load(context.Background(), "busy-beaver")
	require.NoError(t, err, "built-in programs are served by every driver")
	assert.Equal(t, "busy-beaver", p.Name)
	assert.ErrorIs(t, store.Save(context.Background(), &domain.Program{Name: "empty"}), domain.ErrInvalidProgram)

	app.Config.Store.Driver = config.DriverFile
	store, err = app.OpenStore()
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), flip(t)))
	assert.FileExists(t, filepath.Join(app.Config.Store.Path, "flip.yaml"))
}

func TestResolveProgram(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(flip(t))

	p, err := ResolveProgram(ctx, store, "flip")
	require.NoError(t, err)
	assert.Equal(t, "flip", p.Name)

	path := filepath.Join(t.TempDir(), "busy.tm")
	require.NoError(t, os.WriteFile(path, []byte("A,0,1,R,B\nB,0,1,L,A\n"), 0644))
	p, err = ResolveProgram(ctx, store, path)
	require.NoError(t, err)
	assert.Equal(t, "busy", p.Name)
	assert.Len(t, p.Rules, 2)

	_, err = ResolveProgram(ctx, store, "nope")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
}

func TestOverrides_Apply(t *testing.T) {
	p := flip(t)
	require.NoError(t, Overrides{State: "B", Tape: "1_1"}.Apply(p))
	assert.Equal(t, domain.StateB, p.InitialState)
	assert.Equal(t, []domain.Symbol{domain.SymbolOne, domain.SymbolBlank, domain.SymbolOne}, p.Tape)

	assert.ErrorIs(t, Overrides{State: "Q"}.Apply(p), domain.ErrInvalidToken)
	assert.Error(t, Overrides{Tape: "012"}.Apply(p))
}

func TestRunProgram_Text(t *testing.T) {
	app := testApp(t)
	eng := app.Engine(memory.NewStore())

	var buf bytes.Buffer
	res, err := RunProgram(context.Background(), eng, flip(t), &buf, RunOptions{Output: OutputText, ShowTape: true, PrintRules: true, Color: "never"})
	require.NoError(t, err)
	assert.True(t, res.Halted)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "State: A, Symbol: Zero => Write: One, Move: Right, Next State: Halt\n"), out)
	assert.Contains(t, out, "Current state: Halt, Current symbol: Blank\n")
	assert.Contains(t, out, "The Turing machine has halted.\n")
	assert.Contains(t, out, "Steps: 1\n")
}

func TestRunProgram_JSON(t *testing.T) {
	app := testApp(t)
	eng := app.Engine(memory.NewStore())

	var buf bytes.Buffer
	_, err := RunProgram(context.Background(), eng, flip(t), &buf, RunOptions{Output: OutputJSON})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"type":"halt"`)
}

func TestRunProgram_StepLimitAndCancel(t *testing.T) {
	app := testApp(t)
	eng := app.Engine(memory.NewStore())
	loop := &domain.Program{
		Name:         "loop",
		InitialState: domain.StateA,
		Tape:         []domain.Symbol{domain.SymbolBlank},
		Rules: []domain.Rule{
			{State: domain.StateA, Read: domain.SymbolBlank, Write: domain.SymbolBlank, Move: domain.MoveLeft, Next: domain.StateA},
		},
	}

	_, err := RunProgram(context.Background(), eng, loop, &bytes.Buffer{}, RunOptions{Output: OutputQuiet, MaxSteps: 20})
	assert.ErrorIs(t, err, runner.ErrStepLimit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	res, err := RunProgram(ctx, eng, loop, &buf, RunOptions{Output: OutputText, Color: "never"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, "Interrupted after 0 steps.\n", buf.String())

	_, err = RunProgram(context.Background(), eng, loop, &buf, RunOptions{Output: "xml"})
	assert.Error(t, err)
}
