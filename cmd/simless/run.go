package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedsim/simless/pkg/harness"
	"github.com/speedsim/simless/pkg/runner"
	"github.com/speedsim/simless/pkg/seed"

	// Plugins self-register with the runner.
	_ "github.com/speedsim/simless/pkg/plugins/ota"
	_ "github.com/speedsim/simless/pkg/plugins/otagui"
)

var (
	flagPlugins  []string
	flagRunTime  float64
	flagTickRate int
	flagSeed     string
	flagHeadless bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the plugin lifecycle against the simulated host",
	Args:  cobra.NoArgs,
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringSliceVar(&flagPlugins, "plugins", nil, "plugins to load, in order")
	runCmd.Flags().Float64Var(&flagRunTime, "run-time", -1, "stop after this many sim seconds (negative: run until quit)")
	runCmd.Flags().IntVar(&flagTickRate, "tick-rate", 60, "simulation ticks per second")
	runCmd.Flags().StringVar(&flagSeed, "seed", "", "dataref seed file (YAML)")
	runCmd.Flags().BoolVar(&flagHeadless, "headless", true, "run without a rendering backend")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	v, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}

	// Flags win over config file and env.
	if cmd.Flags().Changed("plugins") {
		v.Set(cfgKeyPlugins, flagPlugins)
	}
	if cmd.Flags().Changed("run-time") {
		v.Set(cfgKeyRunTime, flagRunTime)
	}
	if cmd.Flags().Changed("tick-rate") {
		v.Set(cfgKeyTickRate, flagTickRate)
	}
	if cmd.Flags().Changed("seed") {
		v.Set(cfgKeySeed, flagSeed)
	}
	if cmd.Flags().Changed("headless") {
		v.Set(cfgKeyHeadless, flagHeadless)
	}
	if cmd.Flags().Changed("log-level") {
		v.Set(cfgKeyLogLevel, flagLogLevel)
	}
	if cmd.Flags().Changed("log-format") {
		v.Set(cfgKeyLogFormat, flagLogFormat)
	}

	logger := setupLogger(v.GetString(cfgKeyLogLevel), v.GetString(cfgKeyLogFormat))

	tickRate := v.GetInt(cfgKeyTickRate)
	if tickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", tickRate)
	}
	plugins := v.GetStringSlice(cfgKeyPlugins)
	if len(plugins) == 0 {
		return fmt.Errorf("no plugins selected; use --plugins (registered: %v)", runner.Plugins())
	}

	h := harness.New(harness.Options{
		Step:   1.0 / float64(tickRate),
		Logger: logger,
	})

	if seedPath := v.GetString(cfgKeySeed); seedPath != "" {
		f, err := seed.Load(seedPath)
		if err != nil {
			return err
		}
		if err := f.Apply(h.Datarefs); err != nil {
			return err
		}
		logger.Info("seed applied", "file", seedPath, "datarefs", len(f.Datarefs))
	}

	if !v.GetBool(cfgKeyHeadless) {
		// No rendering backend ships with the harness; the flag is the
		// attachment point for one provided out of tree.
		logger.Warn("no rendering backend available, continuing headless")
	}

	r := runner.New(h, runner.Options{
		RunTime: v.GetFloat64(cfgKeyRunTime),
		Pace:    true,
		Logger:  logger,
	})

	logger.Info("starting run", "run", h.RunID(), "plugins", plugins, "tick_rate", tickRate)
	return r.Run(plugins)
}
