package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speedsim/simless/pkg/runner"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the simless version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("simless", Version)
	},
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the plugins compiled into this binary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range runner.Plugins() {
			fmt.Println(name)
		}
	},
}
