// Package cmd provides the command-line interface of the bridge simulator.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ambabridge",
	Short: "Simulates an AXI4 to APB bridge cycle by cycle.",
	Long: `ambabridge runs a script of AXI4 transactions through a bridge ` +
		`to an APB memory and prints the responses. Signal traces can be ` +
		`written as value change dumps or SQLite databases.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
