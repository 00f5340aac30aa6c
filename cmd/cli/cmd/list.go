package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/picogrid/pixel-fight/pkg/logger"
	"github.com/picogrid/pixel-fight/pkg/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List available scenarios",
	Long:  `List every scenario file found in a directory (default "scenarios")`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  listScenarios,
}

func listScenarios(_ *cobra.Command, args []string) error {
	dir := defaultScenarioDir
	if len(args) == 1 {
		dir = args[0]
	}

	infos, err := scenario.Discover(dir)
	if err != nil {
		return fmt.Errorf("failed to discover scenarios: %w", err)
	}

	if len(infos) == 0 {
		logger.Warnf("No scenarios found in %s", dir)
		return nil
	}

	table := logger.NewTable("NAME", "TEAMS", "UNITS", "PATH", "DESCRIPTION")
	for _, info := range infos {
		table.AddRow(
			info.Descriptor.Name,
			strconv.Itoa(len(info.Descriptor.Teams)),
			strconv.Itoa(info.Descriptor.UnitCount()),
			info.Path,
			info.Descriptor.Description,
		)
	}
	table.Print()
	return nil
}
