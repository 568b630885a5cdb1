// Command pseudogo compiles Cambridge IGCSE pseudocode to Python.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pseudogo/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pseudogo",
	Short: "IGCSE pseudocode compiler and toolchain",
	Long:  `pseudogo compiles Cambridge IGCSE pseudocode into Python and reports diagnostics along the way.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "accepted by every command; no command changes its output for it")
	rootCmd.PersistentFlags().Int("max-diagnostics", 200, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func wantColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
