// polyctl is the companion command-line tool: seed a planning interval,
// inspect the capacity dashboard in the terminal, and move CSV exports in
// and out without going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "polyctl",
	Short:         "Capacity planning toolbox",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var flagPI string

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPI, "pi", "", "planning interval (default from config)")
	rootCmd.AddCommand(seedCmd, dashboardCmd, exportCmd, importCmd)
}
