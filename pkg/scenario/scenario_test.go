package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/picogrid/pixel-fight/pkg/engine"
)

const duelYAML = `
name: duel
description: one against one
teams:
  - name: red
    color: [255, 0, 0]
    position: [0, 0]
    radius: 0
    count: 1
  - color: [0, 0, 255]
    position: [100, 0]
    radius: 5
    count: 3
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(duelYAML))
	if err != nil {
		t.Fatalf("Failed to parse scenario: %v", err)
	}

	if d.Name != "duel" {
		t.Errorf("Expected name 'duel', got '%s'", d.Name)
	}
	if len(d.Teams) != 2 {
		t.Fatalf("Expected 2 teams, got %d", len(d.Teams))
	}
	if d.Teams[1].Color != [3]uint8{0, 0, 255} {
		t.Errorf("Expected blue team, got %v", d.Teams[1].Color)
	}
	if d.Teams[1].Position != [2]float32{100, 0} {
		t.Errorf("Expected position (100,0), got %v", d.Teams[1].Position)
	}
	if d.UnitCount() != 4 {
		t.Errorf("Expected 4 units, got %d", d.UnitCount())
	}
	if d.TeamName(0) != "red" || d.TeamName(1) != "team-1" {
		t.Errorf("Unexpected team names: %v", d.TeamNames())
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "no teams", yaml: "name: empty\nteams: []\n"},
		{name: "negative count", yaml: "name: x\nteams:\n  - color: [1, 2, 3]\n    position: [0, 0]\n    radius: 1\n    count: -1\n"},
		{name: "negative radius", yaml: "name: x\nteams:\n  - color: [1, 2, 3]\n    position: [0, 0]\n    radius: -4\n    count: 1\n"},
		{name: "short color", yaml: "name: x\nteams:\n  - color: [1, 2]\n    position: [0, 0]\n    radius: 1\n    count: 1\n"},
		{name: "not yaml", yaml: "teams: [oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestEngineTeams(t *testing.T) {
	teams := Example().EngineTeams()

	if len(teams) != 3 {
		t.Fatalf("Expected 3 teams, got %d", len(teams))
	}

	green := teams[1]
	if green.Color.G != 255 || green.Color.R != 0 || green.Color.A != 255 {
		t.Errorf("Expected opaque green, got %v", green.Color)
	}
	if green.Position.X() != 0 || green.Position.Y() != 1000 {
		t.Errorf("Expected spawn (0,1000), got %v", green.Position)
	}
	if green.Radius != 100 || green.Count != 1000 {
		t.Errorf("Unexpected spawn geometry: radius=%f count=%d", green.Radius, green.Count)
	}
}

func TestBuild(t *testing.T) {
	d, err := Parse([]byte(duelYAML))
	if err != nil {
		t.Fatalf("Failed to parse scenario: %v", err)
	}

	sim, err := Build(d, engine.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to build simulation: %v", err)
	}
	if sim.Len() != 4 {
		t.Errorf("Expected 4 units, got %d", sim.Len())
	}
	if sim.Unit(0).TeamID() != 0 || sim.Unit(3).TeamID() != 1 {
		t.Error("Units must be assigned to teams in descriptor order")
	}

	if _, err := Build(&Descriptor{Name: "empty"}, engine.DefaultConfig()); err == nil {
		t.Error("Expected an error for a scenario without teams")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "example.yaml")

	if err := Save(Example(), path); err != nil {
		t.Fatalf("Failed to save scenario: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}
	if loaded.Name != Example().Name || loaded.UnitCount() != 3000 {
		t.Errorf("Loaded scenario differs: %+v", loaded)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	if err := Save(Example(), filepath.Join(dir, "b.yaml")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.yml"), []byte(duelYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("teams: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	infos, err := Discover(dir)
	if err != nil {
		t.Fatalf("Failed to discover scenarios: %v", err)
	}

	if len(infos) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(infos))
	}
	if infos[0].Descriptor.Name != "duel" || infos[1].Descriptor.Name != "three-way" {
		t.Errorf("Unexpected discovery order: %s, %s", infos[0].Descriptor.Name, infos[1].Descriptor.Name)
	}
}

func TestSelectSingleScenario(t *testing.T) {
	infos := []Info{{Path: "only.yaml", Descriptor: Example()}}

	info, err := Select(infos)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if info.Path != "only.yaml" {
		t.Errorf("Expected only.yaml, got %s", info.Path)
	}

	if _, err := Select(nil); err == nil {
		t.Error("Expected an error without scenarios")
	}
}
