package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// NoTarget is the target id of a unit that holds no target
const NoTarget = -1

// Rand is the random source consulted when a unit picks a new target.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// ActionKind identifies what an Action does when applied
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionSetTarget
	ActionKill
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionSetTarget:
		return "set-target"
	case ActionKill:
		return "kill"
	default:
		return "none"
	}
}

// Action is the intended effect of one unit for one tick. It is produced
// during the decide phase and applied afterwards.
type Action struct {
	Kind ActionKind
	// Unit is the acting unit.
	Unit int
	// Target is the new target for ActionSetTarget (possibly NoTarget) and
	// the victim for ActionKill.
	Target       int
	Displacement mgl32.Vec2
}

// Unit is a single combatant. Its id equals its index in Simulation.Units.
type Unit struct {
	id       int
	teamID   int
	position mgl32.Vec2
	targetID int
	alive    bool
	speed    float32
}

func newUnit(id, teamID int, position mgl32.Vec2, speed float32) Unit {
	return Unit{
		id:       id,
		teamID:   teamID,
		position: position,
		targetID: NoTarget,
		alive:    true,
		speed:    speed,
	}
}

func (u Unit) ID() int              { return u.id }
func (u Unit) TeamID() int          { return u.teamID }
func (u Unit) Position() mgl32.Vec2 { return u.position }
func (u Unit) Alive() bool          { return u.alive }
func (u Unit) Speed() float32       { return u.speed }

// Target returns the id of the unit currently targeted, if any
func (u Unit) Target() (int, bool) {
	return u.targetID, u.targetID != NoTarget
}

// Decide computes the action of u for this tick against a read-only snapshot
// of the whole population. It never mutates units and is safe to call
// concurrently for different units of the same snapshot.
//
// A dead unit produces no action. A unit without a live target draws a new
// one among the alive enemies. Otherwise it kills its target when within
// reach, or moves towards it.
func (u *Unit) Decide(units []Unit, elapsed time.Duration, rng Rand, rules Rules) (Action, bool) {
	if !u.alive {
		return Action{}, false
	}

	if u.targetID == NoTarget || !units[u.targetID].alive {
		return Action{
			Kind:   ActionSetTarget,
			Unit:   u.id,
			Target: u.pickTarget(units, rng),
		}, true
	}

	target := &units[u.targetID]
	if u.inReach(target, rules.Reach) {
		return Action{Kind: ActionKill, Unit: u.id, Target: target.id}, true
	}

	step := u.speed * float32(elapsed.Seconds())
	return Action{
		Kind:         ActionMove,
		Unit:         u.id,
		Target:       target.id,
		Displacement: u.directionTo(target).Mul(step),
	}, true
}

// pickTarget draws one enemy uniformly among the alive units of other teams.
// The candidates are counted first so a single draw decides the pick.
func (u *Unit) pickTarget(units []Unit, rng Rand) int {
	candidates := 0
	for i := range units {
		if u.isEnemy(&units[i]) {
			candidates++
		}
	}
	if candidates == 0 {
		return NoTarget
	}

	n := rng.IntN(candidates)
	for i := range units {
		if !u.isEnemy(&units[i]) {
			continue
		}
		if n == 0 {
			return units[i].id
		}
		n--
	}
	panic("engine: target draw out of range")
}

func (u *Unit) isEnemy(other *Unit) bool {
	return other.alive && other.teamID != u.teamID
}

func (u *Unit) inReach(other *Unit, reach float32) bool {
	return other.position.Sub(u.position).LenSqr() <= reach*reach
}

// directionTo returns the unit vector pointing at other, or the zero vector
// when both units share the same position.
func (u *Unit) directionTo(other *Unit) mgl32.Vec2 {
	delta := other.position.Sub(u.position)
	length := delta.Len()
	if length == 0 {
		return mgl32.Vec2{}
	}
	return delta.Mul(1 / length)
}
