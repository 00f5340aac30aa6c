package report

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/picogrid/pixel-fight/pkg/engine"
	"github.com/picogrid/pixel-fight/pkg/logger"
)

// KillEvent records one unit killing another
type KillEvent struct {
	Tick       uint64
	Killer     int
	Victim     int
	KillerTeam int
	VictimTeam int
}

// Reporter collects battle events and prints team-colored summaries. It
// implements engine.Observer.
type Reporter struct {
	battleID   uuid.UUID
	teamNames  []string
	teamColors []*color.Color
	startTime  time.Time
	log        logger.Logger
	noColor    bool
	// LogKills prints every kill at debug level.
	LogKills bool

	mu     sync.RWMutex
	events []KillEvent
	kills  []int
}

// NewReporter creates a reporter for a battle between the given teams
func NewReporter(teams []engine.Team, teamNames []string, noColor bool) *Reporter {
	r := &Reporter{
		battleID:   uuid.New(),
		teamNames:  make([]string, len(teams)),
		teamColors: make([]*color.Color, len(teams)),
		startTime:  time.Now(),
		noColor:    noColor,
		kills:      make([]int, len(teams)),
	}
	r.log = logger.WithPrefix("battle").WithField("id", r.ShortID())

	for i, team := range teams {
		r.teamNames[i] = fmt.Sprintf("team-%d", i)
		if i < len(teamNames) && teamNames[i] != "" {
			r.teamNames[i] = teamNames[i]
		}
		r.teamColors[i] = color.RGB(int(team.Color.R), int(team.Color.G), int(team.Color.B)).Add(color.Bold)
	}

	return r
}

// BattleID returns the unique id of the battle
func (r *Reporter) BattleID() uuid.UUID { return r.battleID }

// ShortID returns the first eight characters of the battle id
func (r *Reporter) ShortID() string { return r.battleID.String()[:8] }

// UnitKilled records a kill. It is called by the simulation during a tick.
func (r *Reporter) UnitKilled(tick uint64, killer, victim engine.Unit) {
	event := KillEvent{
		Tick:       tick,
		Killer:     killer.ID(),
		Victim:     victim.ID(),
		KillerTeam: killer.TeamID(),
		VictimTeam: victim.TeamID(),
	}

	r.mu.Lock()
	r.events = append(r.events, event)
	r.kills[event.KillerTeam]++
	r.mu.Unlock()

	if r.LogKills {
		r.log.Debugf("%s %s #%d %s %s #%d",
			logger.IconSkull,
			r.TeamLabel(event.KillerTeam), event.Killer,
			logger.IconArrow,
			r.TeamLabel(event.VictimTeam), event.Victim)
	}
}

// Events returns a copy of the recorded kills
func (r *Reporter) Events() []KillEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]KillEvent(nil), r.events...)
}

// KillsByTeam returns the number of kills scored by each team
func (r *Reporter) KillsByTeam() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]int(nil), r.kills...)
}

// TeamName returns the display name of a team
func (r *Reporter) TeamName(teamID int) string {
	if teamID < 0 || teamID >= len(r.teamNames) {
		return "nobody"
	}
	return r.teamNames[teamID]
}

// TeamLabel returns the team name painted in the team color
func (r *Reporter) TeamLabel(teamID int) string {
	name := r.TeamName(teamID)
	if r.noColor || teamID < 0 || teamID >= len(r.teamColors) {
		return name
	}
	return r.teamColors[teamID].Sprint(name)
}

// LogStatus logs the alive count of every team
func (r *Reporter) LogStatus(tick uint64, alive []int) {
	parts := make([]string, len(alive))
	for i, n := range alive {
		parts[i] = fmt.Sprintf("%s=%d", r.TeamLabel(i), n)
	}
	r.log.WithField("tick", tick).Infof("%s %v", logger.IconSwords, parts)
}

// Summary describes the final state of a battle
type Summary struct {
	BattleID uuid.UUID
	Ticks    uint64
	Elapsed  time.Duration
	Outcome  engine.Outcome
	Alive    []int
	Initial  []int
	Kills    []int
}

// Summarize captures the current state of sim
func (r *Reporter) Summarize(sim *engine.Simulation, elapsed time.Duration) Summary {
	initial := make([]int, len(sim.Teams()))
	for i, team := range sim.Teams() {
		initial[i] = team.Count
	}

	return Summary{
		BattleID: r.battleID,
		Ticks:    sim.TickCount(),
		Elapsed:  elapsed,
		Outcome:  sim.Outcome(),
		Alive:    sim.AliveByTeam(),
		Initial:  initial,
		Kills:    r.KillsByTeam(),
	}
}

// WriteSummary prints the result line and a per-team table to w
func (r *Reporter) WriteSummary(w io.Writer, s Summary) {
	switch {
	case !s.Outcome.Finished:
		_, _ = fmt.Fprintf(w, "%s Battle %s undecided after %d ticks (%s simulated)\n",
			logger.IconTime, r.ShortID(), s.Ticks, s.Elapsed)
	case s.Outcome.Winner == engine.NoTeam:
		_, _ = fmt.Fprintf(w, "%s Battle %s ended with no survivors after %d ticks (%s simulated)\n",
			logger.IconFlag, r.ShortID(), s.Ticks, s.Elapsed)
	default:
		_, _ = fmt.Fprintf(w, "%s Battle %s won by %s after %d ticks (%s simulated)\n",
			logger.IconFlag, r.ShortID(), r.TeamLabel(s.Outcome.Winner), s.Ticks, s.Elapsed)
	}

	table := logger.NewTable("TEAM", "ALIVE", "LOST", "KILLS")
	for i := range s.Alive {
		table.AddRow(
			r.TeamLabel(i),
			fmt.Sprintf("%d/%d", s.Alive[i], s.Initial[i]),
			strconv.Itoa(s.Initial[i]-s.Alive[i]),
			strconv.Itoa(s.Kills[i]),
		)
	}
	table.Fprint(w)
}
