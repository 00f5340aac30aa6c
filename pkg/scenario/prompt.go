package scenario

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Select asks the user to pick one of the discovered scenarios
func Select(infos []Info) (*Info, error) {
	if len(infos) == 0 {
		return nil, fmt.Errorf("no scenarios found")
	}
	if len(infos) == 1 {
		return &infos[0], nil
	}

	options := make([]string, len(infos))
	descriptions := make(map[string]string, len(infos))
	for i, info := range infos {
		options[i] = info.Path
		descriptions[info.Path] = fmt.Sprintf("%s, %d teams, %d units",
			info.Descriptor.Name, len(info.Descriptor.Teams), info.Descriptor.UnitCount())
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select scenario:",
		Options: options,
		Description: func(value string, _ int) string {
			return descriptions[value]
		},
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}

	for i := range infos {
		if infos[i].Path == selected {
			return &infos[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %s not found", selected)
}

// Prompt builds a descriptor interactively, one team at a time
func Prompt() (*Descriptor, error) {
	d := &Descriptor{}

	if err := survey.AskOne(&survey.Input{
		Message: "Scenario name:",
		Default: "skirmish",
	}, &d.Name, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}

	var teams int
	if err := survey.AskOne(&survey.Input{
		Message: "Number of teams:",
		Default: "2",
	}, &teams, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}
	if teams < 1 {
		return nil, fmt.Errorf("number of teams must be positive")
	}

	palette := Example().Teams
	for i := 0; i < teams; i++ {
		team := Team{Color: palette[i%len(palette)].Color}

		answers := struct {
			Name   string
			X      float32
			Y      float32
			Radius float32
			Count  int
		}{}
		questions := []*survey.Question{
			{Name: "name", Prompt: &survey.Input{Message: fmt.Sprintf("Team %d name:", i+1), Default: palette[i%len(palette)].Name}},
			{Name: "x", Prompt: &survey.Input{Message: "Spawn X:", Default: fmt.Sprint(i * 500)}, Validate: survey.Required},
			{Name: "y", Prompt: &survey.Input{Message: "Spawn Y:", Default: "0"}, Validate: survey.Required},
			{Name: "radius", Prompt: &survey.Input{Message: "Spawn radius:", Default: "100"}, Validate: survey.Required},
			{Name: "count", Prompt: &survey.Input{Message: "Unit count:", Default: "500"}, Validate: survey.Required},
		}
		if err := survey.Ask(questions, &answers); err != nil {
			return nil, err
		}

		team.Name = answers.Name
		team.Position = [2]float32{answers.X, answers.Y}
		team.Radius = answers.Radius
		team.Count = answers.Count
		d.Teams = append(d.Teams, team)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
