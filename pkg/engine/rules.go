package engine

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Rules holds the combat constants shared by every unit
type Rules struct {
	// Reach is the distance at which a unit kills its target instead of moving.
	// The bound is inclusive: a target exactly Reach away is killed.
	Reach float32
	// BaseSpeed is the mean unit speed, in distance units per second.
	BaseSpeed float32
	// SpeedRandomness spreads unit speeds uniformly over
	// BaseSpeed * [1-SpeedRandomness, 1+SpeedRandomness].
	SpeedRandomness float32
}

// DefaultRules returns the stock combat constants
func DefaultRules() Rules {
	return Rules{
		Reach:           10,
		BaseSpeed:       20,
		SpeedRandomness: 0.5,
	}
}

// drawSpeed returns a speed drawn around BaseSpeed
func (r Rules) drawSpeed(rng *rand.Rand) float32 {
	return r.BaseSpeed * (1 + (rng.Float32()*2-1)*r.SpeedRandomness)
}

// scatter returns a position around center at most radius away: the angle
// and the distance are both drawn uniformly.
func scatter(rng *rand.Rand, center mgl32.Vec2, radius float32) mgl32.Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	distance := rng.Float32() * radius
	return mgl32.Vec2{
		center.X() + float32(math.Cos(angle))*distance,
		center.Y() + float32(math.Sin(angle))*distance,
	}
}
