package viewport

import "github.com/go-gl/mathgl/mgl32"

// PanStep is the distance the camera moves per key press
const PanStep = 100

// Camera maps world coordinates to screen coordinates
type Camera struct {
	origin mgl32.Vec2
}

// Origin returns the world position shown at the top-left of the screen
func (c *Camera) Origin() mgl32.Vec2 { return c.origin }

// Pan moves the camera by delta world units
func (c *Camera) Pan(delta mgl32.Vec2) {
	c.origin = c.origin.Add(delta)
}

// CenterOn places p at the middle of a screen of the given size
func (c *Camera) CenterOn(p mgl32.Vec2, width, height int) {
	c.origin = p.Sub(mgl32.Vec2{float32(width) / 2, float32(height) / 2})
}

// ToScreen converts a world position to screen coordinates
func (c *Camera) ToScreen(p mgl32.Vec2) mgl32.Vec2 {
	return p.Sub(c.origin)
}
