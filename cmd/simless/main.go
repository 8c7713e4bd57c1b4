// Package main provides the simless CLI: a headless (or backend-attached)
// flight-sim plugin harness.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
