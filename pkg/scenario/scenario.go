package scenario

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/pixel-fight/pkg/engine"
)

// Team is the on-disk description of one team
type Team struct {
	Name     string     `yaml:"name,omitempty"`
	Color    [3]uint8   `yaml:"color"`
	Position [2]float32 `yaml:"position"`
	Radius   float32    `yaml:"radius"`
	Count    int        `yaml:"count"`
}

// Descriptor describes the initial layout of a battle
type Descriptor struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Teams       []Team `yaml:"teams"`
}

// Example returns the stock three-team battle
func Example() *Descriptor {
	return &Descriptor{
		Name:        "three-way",
		Description: "Three teams of 1000 units converging on each other",
		Teams: []Team{
			{Name: "red", Color: [3]uint8{255, 0, 0}, Position: [2]float32{0, 0}, Radius: 100, Count: 1000},
			{Name: "green", Color: [3]uint8{0, 255, 0}, Position: [2]float32{0, 1000}, Radius: 100, Count: 1000},
			{Name: "blue", Color: [3]uint8{0, 0, 255}, Position: [2]float32{800, 500}, Radius: 100, Count: 1000},
		},
	}
}

// Validate checks if the descriptor can be turned into a battle
func (d *Descriptor) Validate() error {
	if len(d.Teams) == 0 {
		return fmt.Errorf("at least one team is required")
	}

	for i, team := range d.Teams {
		if team.Count < 0 {
			return fmt.Errorf("team %d: count must not be negative", i)
		}
		if team.Radius < 0 {
			return fmt.Errorf("team %d: radius must not be negative", i)
		}
	}

	return nil
}

// TeamName returns the display name of a team, falling back to its index
func (d *Descriptor) TeamName(teamID int) string {
	if teamID >= 0 && teamID < len(d.Teams) && d.Teams[teamID].Name != "" {
		return d.Teams[teamID].Name
	}
	return fmt.Sprintf("team-%d", teamID)
}

// TeamNames returns the display names of every team, in team order
func (d *Descriptor) TeamNames() []string {
	names := make([]string, len(d.Teams))
	for i := range d.Teams {
		names[i] = d.TeamName(i)
	}
	return names
}

// UnitCount returns the total number of units of the battle
func (d *Descriptor) UnitCount() int {
	total := 0
	for _, team := range d.Teams {
		total += team.Count
	}
	return total
}

// EngineTeams resolves the descriptor into engine teams
func (d *Descriptor) EngineTeams() []engine.Team {
	teams := make([]engine.Team, len(d.Teams))
	for i, team := range d.Teams {
		teams[i] = engine.NewTeam(
			color.RGBA{R: team.Color[0], G: team.Color[1], B: team.Color[2], A: 0xff},
			mgl32.Vec2{team.Position[0], team.Position[1]},
			team.Radius,
			team.Count,
		)
	}
	return teams
}

// Build validates the descriptor and creates the simulation
func Build(d *Descriptor, cfg engine.Config) (*engine.Simulation, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return engine.New(d.EngineTeams(), cfg), nil
}

// Parse decodes a descriptor from YAML
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("error parsing scenario: %w", err)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &d, nil
}

// Load loads a descriptor from a YAML file
func Load(path string) (*Descriptor, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario file: %w", err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Marshal encodes a descriptor as YAML
func Marshal(d *Descriptor) ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("error marshaling scenario: %w", err)
	}
	return data, nil
}

// Save writes a descriptor to a YAML file, creating parent directories
func Save(d *Descriptor, path string) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	data, err := Marshal(d)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing scenario file: %w", err)
	}

	return nil
}
