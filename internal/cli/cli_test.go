package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/fsh/qplanarity/pkg/config"
	"github.com/fsh/qplanarity/pkg/errors"
	"github.com/fsh/qplanarity/pkg/graph"
)

// isolateConfig points every config lookup at an empty temp dir.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writePuzzle(t *testing.T, dir, name string, p graph.Puzzle) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := graph.WritePuzzleFile(p, path); err != nil {
		t.Fatal(err)
	}
	return path
}

var squareWithX = graph.Puzzle{
	ID:        "square",
	Vertices:  4,
	Edges:     []graph.Edge{{0, 1}, {1, 2}, {2, 3}, {0, 3}, {0, 2}, {1, 3}},
	Positions: []graph.Position{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
}

func TestGenerateToStdout(t *testing.T) {
	isolateConfig(t)

	out, err := run(t, "generate", "-n", "10", "--seed", "3")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	p, err := graph.ReadPuzzle(strings.NewReader(out))
	if err != nil {
		t.Fatalf("stdout is not a puzzle: %v\n%s", err, out)
	}
	if p.Vertices != 10 || len(p.Positions) != 10 || p.ID == "" {
		t.Errorf("puzzle = %d vertices, %d positions, id %q", p.Vertices, len(p.Positions), p.ID)
	}

	again, err := run(t, "generate", "-n", "10", "--seed", "3")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	q, _ := graph.ReadPuzzle(strings.NewReader(again))
	if !slices.Equal(p.Edges, q.Edges) || !slices.Equal(p.Positions, q.Positions) {
		t.Error("same seed should produce the same puzzle")
	}
}

func TestGenerateToFileThenCheck(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "puzzle.json")

	out, err := run(t, "generate", "-n", "12", "--seed", "8", "-o", path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"Generated puzzle", "12 vertices", "seed 8", path, "play " + path} {
		if !strings.Contains(out, want) {
			t.Errorf("generate output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "check", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "lines untangled") {
		t.Errorf("check output = %s", out)
	}
}

func TestCheck(t *testing.T) {
	dir := isolateConfig(t)
	square := writePuzzle(t, dir, "square.json", squareWithX)

	solved := squareWithX
	solved.Positions = slices.Clone(squareWithX.Positions)
	solved.Positions[1] = graph.Position{X: 2, Y: 8}
	solvedPath := writePuzzle(t, dir, "solved.json", solved)

	t.Run("tangled", func(t *testing.T) {
		out, err := run(t, "check", "--crossings", square)
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		for _, want := range []string{"4 out of 6 lines untangled", "2 lines still tangled", "(0,2)", "(1,3)"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("strict", func(t *testing.T) {
		if _, err := run(t, "check", "--strict", square); err == nil {
			t.Error("check --strict on a tangled puzzle should fail")
		}
		if _, err := run(t, "check", "--strict", solvedPath); err != nil {
			t.Errorf("check --strict on a solved puzzle: %v", err)
		}
	})

	t.Run("solved", func(t *testing.T) {
		out, err := run(t, "check", solvedPath)
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if !strings.Contains(out, "Solved") || !strings.Contains(out, "6 out of 6") {
			t.Errorf("output = %s", out)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "check", filepath.Join(dir, "nope.json"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("error = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("without positions", func(t *testing.T) {
		bare := squareWithX
		bare.Positions = nil
		out, err := run(t, "check", writePuzzle(t, dir, "bare.json", bare))
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if !strings.Contains(out, "out of 6 lines untangled") {
			t.Errorf("output = %s", out)
		}
	})
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := isolateConfig(t)
	cfgPath := filepath.Join(dir, "qp.toml")
	if err := os.WriteFile(cfgPath, []byte("[generator]\nnodes = 9\nseed = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"config only", []string{"generate", "--config", cfgPath}, 9},
		{"flag wins", []string{"generate", "--config", cfgPath, "-n", "14"}, 14},
		{"defaults", []string{"generate", "--seed", "2"}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			p, err := graph.ReadPuzzle(strings.NewReader(out))
			if err != nil {
				t.Fatal(err)
			}
			if p.Vertices != tt.want {
				t.Errorf("Vertices = %d, want %d", p.Vertices, tt.want)
			}
		})
	}
}

func TestInvalidFlags(t *testing.T) {
	isolateConfig(t)

	tests := [][]string{
		{"generate", "--denseness", "1.5"},
		{"generate", "-n", "2"},
		{"generate", "--layout", "spiral"},
		{"generate", "--radius=-3"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			_, err := run(t, args...)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}

	if _, err := run(t, "generate", "--config", filepath.Join(t.TempDir(), "none.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing --config error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := isolateConfig(t)

	out, err := run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "nodes = 30") || !strings.Contains(out, "[layout]") {
		t.Errorf("config show = %s", out)
	}

	out, err = run(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, "qplanarity", "config.toml")) || !strings.Contains(out, "using defaults") {
		t.Errorf("config path = %s", out)
	}

	cfgPath := filepath.Join(dir, "qplanarity", "config.toml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("[tracker]\nworkers = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "workers = 3") {
		t.Errorf("config show = %s", out)
	}
}

func TestCompletion(t *testing.T) {
	isolateConfig(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, "qplanarity") {
			t.Errorf("completion %s output does not mention the command", shell)
		}
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
