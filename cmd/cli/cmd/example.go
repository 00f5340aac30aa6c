package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/picogrid/pixel-fight/pkg/logger"
	"github.com/picogrid/pixel-fight/pkg/scenario"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Dump an example scenario",
	Long:  `Print the example three-team scenario as YAML, or build one interactively`,
	RunE:  dumpExample,
}

func init() {
	exampleCmd.Flags().StringP("output", "o", "", "write the scenario to a file instead of stdout")
	exampleCmd.Flags().BoolP("interactive", "i", false, "build the scenario interactively")
}

func dumpExample(cmd *cobra.Command, _ []string) error {
	d := scenario.Example()

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		var err error
		if d, err = scenario.Prompt(); err != nil {
			return fmt.Errorf("failed to build scenario: %w", err)
		}
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		if err := scenario.Save(d, output); err != nil {
			return err
		}
		logger.Successf("Scenario %s written to %s", d.Name, output)
		return nil
	}

	data, err := scenario.Marshal(d)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
