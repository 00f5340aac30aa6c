package engine

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// NoTeam marks the absence of a team, e.g. the winner of a battle where every
// team was wiped out during the same tick.
const NoTeam = -1

// Team describes one side of a battle. Teams are fixed for the lifetime of a
// Simulation and are identified by their index in Simulation.Teams.
type Team struct {
	Color    color.RGBA
	Position mgl32.Vec2
	Radius   float32
	Count    int
}

// NewTeam creates a team descriptor
func NewTeam(c color.RGBA, position mgl32.Vec2, radius float32, count int) Team {
	return Team{
		Color:    c,
		Position: position,
		Radius:   radius,
		Count:    count,
	}
}
