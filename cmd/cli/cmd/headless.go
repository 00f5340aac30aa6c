package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/picogrid/pixel-fight/pkg/logger"
	"github.com/picogrid/pixel-fight/pkg/report"
	"github.com/picogrid/pixel-fight/pkg/runner"
	"github.com/picogrid/pixel-fight/pkg/scenario"
)

var headlessCmd = &cobra.Command{
	Use:   "headless [scenario]",
	Short: "Run a battle without a window",
	Long: `Run the battle described by a scenario file as fast as possible (or paced
in real time with --realtime) and print a summary once a team is left standing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHeadless,
}

func init() {
	addScenarioFlags(headlessCmd)
	headlessCmd.Flags().Duration("step", 0, "elapsed time fed to every tick")
	headlessCmd.Flags().Uint64("max-ticks", 0, "stop an undecided battle after this many ticks")
	headlessCmd.Flags().Bool("realtime", false, "pace ticks on the wall clock")
	headlessCmd.Flags().Uint64("status-every", 0, "log team status every N ticks")
	headlessCmd.Flags().Bool("kills", false, "log every kill at debug level")
	headlessCmd.Flags().String("profile", "", "write a profile: cpu, mem, block or trace")
	headlessCmd.Flags().String("profile-dir", ".", "directory for profile output")
}

// startProfile starts the requested profiler; the returned stop is never nil
func startProfile(mode, dir string) (func(), error) {
	var option func(*profile.Profile)
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		option = profile.CPUProfile
	case "mem":
		option = profile.MemProfile
	case "block":
		option = profile.BlockProfile
	case "trace":
		option = profile.TraceProfile
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}

	p := profile.Start(option, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	logger.Infof("Writing %s profile to %s", mode, dir)
	return p.Stop, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	d, err := resolveScenario(cmd, args)
	if err != nil {
		return err
	}

	seed := settings.ResolveSeed()
	teams := d.EngineTeams()
	reporter := report.NewReporter(teams, d.TeamNames(), settings.NoColor)
	reporter.LogKills, _ = cmd.Flags().GetBool("kills")

	sim, err := scenario.Build(d, settings.EngineConfig(reporter))
	if err != nil {
		return err
	}

	mode, _ := cmd.Flags().GetString("profile")
	dir, _ := cmd.Flags().GetString("profile-dir")
	stopProfile, err := startProfile(mode, dir)
	if err != nil {
		return err
	}
	defer stopProfile()

	logger.LogSection(fmt.Sprintf("%s %s", logger.IconSwords, d.Name))
	logger.LogKeyValue("Battle", reporter.BattleID())
	logger.LogKeyValue("Seed", seed)
	logger.LogKeyValue("Units", sim.Len())
	logger.LogKeyValue("Step", settings.Headless.Step)
	labels := make([]string, len(teams))
	for i, team := range teams {
		labels[i] = fmt.Sprintf("%s: %d units at (%.0f, %.0f)",
			reporter.TeamLabel(i), team.Count, team.Position.X(), team.Position.Y())
	}
	logger.LogList("Teams", labels)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Warn("Received interrupt signal, stopping battle...")
			cancel()
		case <-ctx.Done():
		}
	}()

	r := &runner.Runner{
		Sim:         sim,
		Step:        settings.Headless.Step,
		Realtime:    settings.Headless.Realtime,
		MaxTicks:    settings.Headless.MaxTicks,
		StatusEvery: settings.Headless.StatusEvery,
		Status:      reporter.LogStatus,
	}

	logger.Progressf("Simulating %d units across %d teams", sim.Len(), len(teams))

	var (
		spinner *logger.Spinner
		bar     *logger.ProgressBar
	)
	switch {
	case logger.IsTerminal(os.Stdout) && settings.LogLevel != "debug":
		spinner = logger.NewSpinner("Simulating...")
		r.Status = func(tick uint64, alive []int) {
			spinner.UpdateMessage(fmt.Sprintf("Simulating... tick %d, alive %v", tick, alive))
		}
		spinner.Start()
	case r.MaxTicks > 0:
		bar = logger.NewProgressBar(int(r.MaxTicks), "Ticks")
		every := max(r.MaxTicks/100, 1)
		r.OnTick = func(tick uint64) {
			if tick%every == 0 {
				bar.Update(int(tick))
			}
		}
	}

	res, err := r.Run(ctx)
	if bar != nil {
		bar.Finish()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		if spinner != nil {
			spinner.Error(fmt.Sprintf("Battle failed after %d ticks", res.Ticks))
		}
		return fmt.Errorf("battle failed: %w", err)
	}
	if spinner != nil {
		if err != nil {
			spinner.Error(fmt.Sprintf("Battle interrupted after %d ticks", res.Ticks))
		} else {
			spinner.Success(fmt.Sprintf("Battle ended after %d ticks", res.Ticks))
		}
	}

	logger.Infof("%s %d ticks in %s", logger.IconTime, res.Ticks, res.Wall)
	reporter.WriteSummary(cmd.OutOrStdout(), reporter.Summarize(sim, res.Simulated))
	return nil
}
