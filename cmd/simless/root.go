package main

import (
	"github.com/spf13/cobra"
)

// Version is the CLI release string.
const Version = "0.1.0"

// Global flag values.
var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "simless",
	Short: "Simless runs flight-sim plugins against a simulated host",
	Long: `Simless hosts avionics plugins against a deterministic, tick-driven
simulation of the flight-sim scripting surface: datarefs, widgets,
flight loops and draw callbacks. Plugins run their real lifecycle
without the simulator installed.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: simless.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pluginsCmd)
}
