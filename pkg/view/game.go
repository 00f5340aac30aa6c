package view

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/picogrid/pixel-fight/pkg/engine"
	"github.com/picogrid/pixel-fight/pkg/viewport"
)

const unitSize = 4

var background = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

// panKeys maps keys to camera moves. Ebiten keys are layout independent, so
// WASD also covers ZQSD on AZERTY keyboards.
var panKeys = map[ebiten.Key]mgl32.Vec2{
	ebiten.KeyW:          {0, -viewport.PanStep},
	ebiten.KeyA:          {-viewport.PanStep, 0},
	ebiten.KeyS:          {0, viewport.PanStep},
	ebiten.KeyD:          {viewport.PanStep, 0},
	ebiten.KeyArrowUp:    {0, -viewport.PanStep},
	ebiten.KeyArrowLeft:  {-viewport.PanStep, 0},
	ebiten.KeyArrowDown:  {0, viewport.PanStep},
	ebiten.KeyArrowRight: {viewport.PanStep, 0},
}

// Game renders a simulation and advances it once per frame with the
// measured wall-clock delta.
type Game struct {
	sim       *engine.Simulation
	teamNames []string
	camera    viewport.Camera
	width     int
	height    int
	lastTick  time.Time
	simulated time.Duration
	paused    bool
}

// NewGame creates a viewer centered on the spawn positions of the teams
func NewGame(sim *engine.Simulation, teamNames []string, width, height int) *Game {
	g := &Game{
		sim:       sim,
		teamNames: teamNames,
		width:     width,
		height:    height,
	}

	var center mgl32.Vec2
	if teams := sim.Teams(); len(teams) > 0 {
		for _, team := range teams {
			center = center.Add(team.Position)
		}
		center = center.Mul(1 / float32(len(teams)))
	}
	g.camera.CenterOn(center, width, height)

	return g
}

// Run opens the window and blocks until it is closed
func Run(g *Game, title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	for key, delta := range panKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.camera.Pan(delta)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}

	now := time.Now()
	if g.lastTick.IsZero() {
		g.lastTick = now
	}
	delta := now.Sub(g.lastTick)
	g.lastTick = now

	if !g.paused {
		g.sim.Tick(delta)
		g.simulated += delta
	}
	return nil
}

// Simulated returns the total time fed to the simulation
func (g *Game) Simulated() time.Duration { return g.simulated }

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	teams := g.sim.Teams()
	for _, u := range g.sim.Units() {
		if !u.Alive() {
			continue
		}
		p := g.camera.ToScreen(u.Position())
		vector.FillRect(screen, p.X()-unitSize/2, p.Y()-unitSize/2, unitSize, unitSize, teams[u.TeamID()].Color, false)
	}

	ebitenutil.DebugPrint(screen, g.hud())
}

func (g *Game) hud() string {
	alive := g.sim.AliveByTeam()
	parts := make([]string, len(alive))
	for i, n := range alive {
		name := fmt.Sprintf("team-%d", i)
		if i < len(g.teamNames) && g.teamNames[i] != "" {
			name = g.teamNames[i]
		}
		parts[i] = fmt.Sprintf("%s: %d", name, n)
	}

	status := fmt.Sprintf("tick %d  %.0f fps", g.sim.TickCount(), ebiten.ActualFPS())
	if g.paused {
		status += "  [paused]"
	}
	if outcome := g.sim.Outcome(); outcome.Finished && outcome.Winner != engine.NoTeam && outcome.Winner < len(g.teamNames) {
		status += "  winner: " + g.teamNames[outcome.Winner]
	}
	return status + "\n" + strings.Join(parts, "  ")
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
