package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/picogrid/pixel-fight/pkg/scenario"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestExampleWritesScenario(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "example.yaml")

	execute(t, "example", "--no-color", "-o", path)

	d, err := scenario.Load(path)
	if err != nil {
		t.Fatalf("Failed to load the written scenario: %v", err)
	}
	if d.Name != scenario.Example().Name {
		t.Errorf("Expected scenario %q, got %q", scenario.Example().Name, d.Name)
	}
}

func TestHeadlessDuel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out := execute(t, "headless", "--no-color", "--seed", "3", "--step", "100ms",
		"--max-ticks", "1000", filepath.Join("..", "..", "..", "scenarios", "duel.yaml"))

	if !strings.Contains(out, "TEAM") || !strings.Contains(out, "red") {
		t.Errorf("Expected a summary table, got:\n%s", out)
	}
	if !strings.Contains(out, "Ticks: [") || !strings.Contains(out, "100%") {
		t.Errorf("Expected a tick progress bar, got:\n%s", out)
	}
	if settings.Seed != 3 || settings.Headless.MaxTicks != 1000 {
		t.Errorf("Flags were not applied: %+v", settings)
	}
}

func TestListScenarios(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out := execute(t, "list", "--no-color", filepath.Join("..", "..", "..", "scenarios"))

	for _, want := range []string{"NAME", "TEAMS", "duel.yaml", "three-way.yaml"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in listing, got:\n%s", want, out)
		}
	}
}

func TestStartProfileRejectsUnknownMode(t *testing.T) {
	if _, err := startProfile("heap-dump", t.TempDir()); err == nil {
		t.Error("Expected an error for an unknown profile mode")
	}

	stop, err := startProfile("", t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	stop()
}
