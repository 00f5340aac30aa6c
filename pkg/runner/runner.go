package runner

import (
	"context"
	"time"

	"github.com/picogrid/pixel-fight/pkg/engine"
	"github.com/picogrid/pixel-fight/pkg/logger"
)

// StatusFunc receives periodic status updates
type StatusFunc func(tick uint64, alive []int)

// Runner drives a simulation without a window
type Runner struct {
	Sim *engine.Simulation
	// Step is the elapsed time fed to every tick. In realtime mode it is the
	// pacing interval and ticks receive the measured wall-clock delta.
	Step     time.Duration
	Realtime bool
	// MaxTicks stops an undecided battle; zero means no limit.
	MaxTicks uint64
	// StatusEvery calls Status every that many ticks; zero disables it.
	StatusEvery uint64
	Status      StatusFunc
	// OnTick is called after every tick.
	OnTick func(tick uint64)
}

// Result describes how a run ended
type Result struct {
	Ticks     uint64
	Simulated time.Duration
	Wall      time.Duration
	Outcome   engine.Outcome
}

// Run ticks the simulation until the battle is decided, MaxTicks is reached
// or ctx is cancelled. A cancelled run returns the partial result together
// with ctx.Err().
func (r *Runner) Run(ctx context.Context) (Result, error) {
	log := logger.WithPrefix("runner")
	start := time.Now()
	var res Result

	finish := func() Result {
		res.Wall = time.Since(start)
		res.Outcome = r.Sim.Outcome()
		return res
	}

	var ticks <-chan time.Time
	if r.Realtime {
		ticker := time.NewTicker(r.Step)
		defer ticker.Stop()
		ticks = ticker.C
	}
	last := start

	log.Debugf("Running %d units, step %s, realtime %v", r.Sim.Len(), r.Step, r.Realtime)

	for {
		if r.Sim.Outcome().Finished {
			return finish(), nil
		}
		if r.MaxTicks > 0 && res.Ticks >= r.MaxTicks {
			log.Warnf("Stopping after %d ticks without a winner", res.Ticks)
			return finish(), nil
		}

		elapsed := r.Step
		if r.Realtime {
			select {
			case <-ctx.Done():
				return finish(), ctx.Err()
			case now := <-ticks:
				elapsed = now.Sub(last)
				last = now
			}
		} else {
			select {
			case <-ctx.Done():
				return finish(), ctx.Err()
			default:
			}
		}

		r.Sim.Tick(elapsed)
		res.Ticks++
		res.Simulated += elapsed

		if r.OnTick != nil {
			r.OnTick(res.Ticks)
		}
		if r.Status != nil && r.StatusEvery > 0 && res.Ticks%r.StatusEvery == 0 {
			r.Status(r.Sim.TickCount(), r.Sim.AliveByTeam())
		}
	}
}
