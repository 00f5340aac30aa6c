package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/pixel-fight/pkg/config"
	"github.com/picogrid/pixel-fight/pkg/logger"
)

var (
	cfgFile  string
	settings *config.Settings
)

// flagBindings maps settings keys to the flags that override them
var flagBindings = map[string]string{
	"seed":                  "seed",
	"workers":               "workers",
	"log_level":             "log-level",
	"no_color":              "no-color",
	"rules.reach":           "reach",
	"rules.base_speed":      "speed",
	"headless.step":         "step",
	"headless.max_ticks":    "max-ticks",
	"headless.realtime":     "realtime",
	"headless.status_every": "status-every",
	"window.width":          "width",
	"window.height":         "height",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pixel-fight",
	Short: "Pixel fight battle simulator",
	Long: `Pixel fight simulates teams of units that pick random enemies, close in
on them and eliminate them on contact, until a single team is left standing.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pixel-fight/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().Int("workers", 0, "decide-phase workers (0 uses every CPU)")
	rootCmd.PersistentFlags().Float32("reach", 0, "kill distance override")
	rootCmd.PersistentFlags().Float32("speed", 0, "base unit speed override")

	// Add commands
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(listCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings reads the config file, environment and flags into settings
func loadSettings(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return err
	}

	if err := bindFlags(cmd, v); err != nil {
		return err
	}

	settings, err = config.Load(v)
	if err != nil {
		return err
	}

	logger.SetOutput(cmd.OutOrStdout())
	logger.SetLevel(logger.ParseLevel(settings.LogLevel))
	if settings.NoColor {
		logger.SetNoColor(true)
	}

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debugf("%s Loaded config from %s", logger.IconConfig, used)
	}
	return nil
}

// bindFlags lets explicitly set flags override the config file
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for key, name := range flagBindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}
