package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/pixel-fight/pkg/logger"
	"github.com/picogrid/pixel-fight/pkg/report"
	"github.com/picogrid/pixel-fight/pkg/scenario"
	"github.com/picogrid/pixel-fight/pkg/view"
)

const defaultScenarioDir = "scenarios"

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run a battle in a window",
	Long: `Open a window and run the battle described by a scenario file.
Without an argument the scenarios directory is searched and one is selected
interactively. Pan the camera with WASD or the arrow keys, pause with space.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBattle,
}

func init() {
	addScenarioFlags(runCmd)
	runCmd.Flags().Int("width", 800, "window width")
	runCmd.Flags().Int("height", 600, "window height")
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", defaultScenarioDir, "directory searched when no scenario is given")
}

// resolveScenario loads the scenario named on the command line, or lets the
// user pick one from the scenario directory
func resolveScenario(cmd *cobra.Command, args []string) (*scenario.Descriptor, error) {
	if len(args) == 1 {
		return scenario.Load(args[0])
	}

	dir, _ := cmd.Flags().GetString("dir")
	infos, err := scenario.Discover(dir)
	if err != nil {
		return nil, err
	}

	info, err := scenario.Select(infos)
	if err != nil {
		return nil, fmt.Errorf("failed to select scenario: %w", err)
	}
	return info.Descriptor, nil
}

func runBattle(cmd *cobra.Command, args []string) error {
	d, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	seed := settings.ResolveSeed()
	teams := d.EngineTeams()
	reporter := report.NewReporter(teams, d.TeamNames(), settings.NoColor)

	sim, err := scenario.Build(d, settings.EngineConfig(reporter))
	if err != nil {
		return err
	}

	logger.LogSection(fmt.Sprintf("%s %s", logger.IconSwords, d.Name))
	logger.LogKeyValue("Battle", reporter.BattleID())
	logger.LogKeyValue("Seed", seed)
	logger.LogKeyValue("Units", sim.Len())

	game := view.NewGame(sim, d.TeamNames(), settings.Window.Width, settings.Window.Height)
	if err := view.Run(game, "Pixel fight - "+d.Name); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}

	reporter.WriteSummary(cmd.OutOrStdout(), reporter.Summarize(sim, game.Simulated()))
	return nil
}
