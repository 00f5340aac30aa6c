package report

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/picogrid/pixel-fight/pkg/engine"
)

func duel() []engine.Team {
	return []engine.Team{
		engine.NewTeam(color.RGBA{R: 255, A: 255}, mgl32.Vec2{0, 0}, 0, 1),
		engine.NewTeam(color.RGBA{B: 255, A: 255}, mgl32.Vec2{30, 0}, 0, 1),
	}
}

func TestReporterRecordsKills(t *testing.T) {
	teams := duel()
	r := NewReporter(teams, []string{"red"}, true)

	cfg := engine.DefaultConfig()
	cfg.Rules.SpeedRandomness = 0
	cfg.Observer = r
	sim := engine.New(teams, cfg)

	for i := 0; i < 20 && !sim.Outcome().Finished; i++ {
		sim.Tick(250 * time.Millisecond)
	}

	if !sim.Outcome().Finished {
		t.Fatal("Expected the duel to finish")
	}

	events := r.Events()
	if len(events) == 0 {
		t.Fatal("Expected recorded kills")
	}
	for _, e := range events {
		if e.KillerTeam == e.VictimTeam {
			t.Errorf("Unexpected friendly kill: %+v", e)
		}
		if e.Tick == 0 || e.Tick > sim.TickCount() {
			t.Errorf("Kill recorded at invalid tick %d", e.Tick)
		}
	}

	total := 0
	for _, n := range r.KillsByTeam() {
		total += n
	}
	if total != len(events) {
		t.Errorf("Expected %d kills by team, got %d", len(events), total)
	}
}

func TestTeamNames(t *testing.T) {
	r := NewReporter(duel(), []string{"red", ""}, true)

	if r.TeamName(0) != "red" {
		t.Errorf("Expected 'red', got '%s'", r.TeamName(0))
	}
	if r.TeamName(1) != "team-1" {
		t.Errorf("Expected fallback name 'team-1', got '%s'", r.TeamName(1))
	}
	if r.TeamName(engine.NoTeam) != "nobody" {
		t.Errorf("Expected 'nobody', got '%s'", r.TeamName(engine.NoTeam))
	}
	if len(r.ShortID()) != 8 {
		t.Errorf("Expected an 8 character short id, got %q", r.ShortID())
	}
}

func TestWriteSummary(t *testing.T) {
	r := NewReporter(duel(), []string{"red", "blue"}, true)

	tests := []struct {
		name    string
		outcome engine.Outcome
		expect  string
	}{
		{name: "winner", outcome: engine.Outcome{Finished: true, Winner: 1}, expect: "won by blue"},
		{name: "no survivors", outcome: engine.Outcome{Finished: true, Winner: engine.NoTeam}, expect: "no survivors"},
		{name: "undecided", outcome: engine.Outcome{Winner: engine.NoTeam}, expect: "undecided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r.WriteSummary(&buf, Summary{
				Ticks:   12,
				Elapsed: 3 * time.Second,
				Outcome: tt.outcome,
				Alive:   []int{0, 1},
				Initial: []int{1, 1},
				Kills:   []int{0, 1},
			})

			out := buf.String()
			if !strings.Contains(out, tt.expect) {
				t.Errorf("Expected %q in summary, got:\n%s", tt.expect, out)
			}
			if !strings.Contains(out, "red   0/1    1     0") {
				t.Errorf("Expected red row in summary, got:\n%s", out)
			}
		})
	}
}
