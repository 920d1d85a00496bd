package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"helios/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "helios",
	Short: "Helios GPU math library call optimizer",
	Long:  `Helios rewrites math library calls in compiler IR modules before codegen`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(usenativeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "number of functions to process concurrently (0 = all CPUs)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
