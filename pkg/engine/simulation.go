package engine

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// decideChunk is the number of units a decide worker handles per task
const decideChunk = 64

// spawnStream selects the PCG stream used for placement and speeds, keeping
// it apart from the per-unit streams of the decide phase.
const spawnStream = 0x5eed

// Observer is notified of kills while a tick is being applied. Calls happen
// sequentially on the goroutine running Tick.
type Observer interface {
	UnitKilled(tick uint64, killer, victim Unit)
}

// Config holds the construction parameters of a Simulation
type Config struct {
	Rules Rules
	// Seed drives placement, speeds and target draws. Two simulations with
	// the same teams, seed and elapsed-time sequence evolve identically.
	Seed uint64
	// Workers bounds the decide-phase parallelism. Zero means GOMAXPROCS.
	Workers int
	// Observer is optional.
	Observer Observer
}

// DefaultConfig returns a config with the stock rules
func DefaultConfig() Config {
	return Config{Rules: DefaultRules()}
}

// Outcome reports whether a battle is decided
type Outcome struct {
	Finished bool
	// Winner is the index of the last team standing, or NoTeam.
	Winner int
}

// Simulation owns the unit population and advances it tick by tick
type Simulation struct {
	teams    []Team
	units    []Unit
	rules    Rules
	seed     uint64
	workers  int
	observer Observer

	tick    uint64
	alive   []int
	actions []Action
}

// New builds the initial population: each team's units are scattered around
// its spawn position and receive consecutive ids in team order.
func New(teams []Team, cfg Config) *Simulation {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	s := &Simulation{
		teams:    append([]Team(nil), teams...),
		rules:    cfg.Rules,
		seed:     cfg.Seed,
		workers:  workers,
		observer: cfg.Observer,
		alive:    make([]int, len(teams)),
	}

	total := 0
	for _, team := range teams {
		total += team.Count
	}
	s.units = make([]Unit, 0, total)
	s.actions = make([]Action, total)

	rng := rand.New(rand.NewPCG(cfg.Seed, spawnStream))
	for teamID, team := range s.teams {
		for range team.Count {
			position := scatter(rng, team.Position, team.Radius)
			s.units = append(s.units, newUnit(len(s.units), teamID, position, s.rules.drawSpeed(rng)))
		}
		s.alive[teamID] = team.Count
	}

	return s
}

// Tick advances the battle by elapsed. All decisions are taken against the
// state left by the previous tick, then applied in ascending unit id order.
func (s *Simulation) Tick(elapsed time.Duration) {
	if elapsed < 0 {
		panic(fmt.Sprintf("engine: negative elapsed time %s", elapsed))
	}

	s.tick++
	s.decide(elapsed)
	s.apply()
}

// decide fills s.actions, one slot per unit. Workers only read s.units and
// write disjoint slots of s.actions.
func (s *Simulation) decide(elapsed time.Duration) {
	n := len(s.units)
	if n == 0 {
		return
	}

	tickSeed := s.seed ^ (s.tick * 0x9e3779b97f4a7c15)

	var g errgroup.Group
	g.SetLimit(s.workers)
	for start := 0; start < n; start += decideChunk {
		end := min(start+decideChunk, n)
		g.Go(func() error {
			src := rand.NewPCG(0, 0)
			rng := rand.New(src)
			for i := start; i < end; i++ {
				// Reseed per unit so draws do not depend on how units are chunked.
				src.Seed(tickSeed, uint64(i))
				action, ok := s.units[i].Decide(s.units, elapsed, rng, s.rules)
				if !ok {
					action = Action{}
				}
				s.actions[i] = action
			}
			return nil
		})
	}
	// Decide never fails; Wait only joins the workers.
	_ = g.Wait()
}

func (s *Simulation) apply() {
	for i := range s.actions {
		s.applyAction(s.actions[i])
		s.actions[i] = Action{}
	}
}

// applyAction mutates the population according to a single action. Killing
// an already dead victim only clears the killer's target.
func (s *Simulation) applyAction(a Action) {
	switch a.Kind {
	case ActionMove:
		u := &s.units[a.Unit]
		u.position = u.position.Add(a.Displacement)
	case ActionSetTarget:
		if a.Target == a.Unit {
			panic(fmt.Sprintf("engine: unit %d cannot target itself", a.Unit))
		}
		s.units[a.Unit].targetID = a.Target
	case ActionKill:
		s.units[a.Unit].targetID = NoTarget
		victim := &s.units[a.Target]
		if !victim.alive {
			return
		}
		victim.alive = false
		s.alive[victim.teamID]--
		if s.observer != nil {
			s.observer.UnitKilled(s.tick, s.units[a.Unit], *victim)
		}
	}
}

// Units returns the population ordered by id. The slice is owned by the
// simulation and must not be modified.
func (s *Simulation) Units() []Unit { return s.units }

// Unit returns the unit with the given id
func (s *Simulation) Unit(id int) Unit { return s.units[id] }

// Teams returns the teams ordered by id. The slice must not be modified.
func (s *Simulation) Teams() []Team { return s.teams }

// Len returns the number of units, dead or alive
func (s *Simulation) Len() int { return len(s.units) }

// TickCount returns the number of ticks run so far
func (s *Simulation) TickCount() uint64 { return s.tick }

// Rules returns the combat constants in use
func (s *Simulation) Rules() Rules { return s.rules }

// AliveByTeam returns the number of alive units of each team
func (s *Simulation) AliveByTeam() []int {
	return append([]int(nil), s.alive...)
}

// Outcome reports whether at most one team still has alive units
func (s *Simulation) Outcome() Outcome {
	winner := NoTeam
	standing := 0
	for teamID, n := range s.alive {
		if n > 0 {
			standing++
			winner = teamID
		}
	}
	if standing > 1 {
		return Outcome{Winner: NoTeam}
	}
	return Outcome{Finished: true, Winner: winner}
}
