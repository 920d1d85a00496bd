package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"helios/internal/ir"
	"helios/internal/libcall"
)

// loadModule reads a serialized IR module from disk.
func loadModule(path string) (*ir.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open module: %w", err)
	}
	defer f.Close()

	mod, err := ir.DecodeModule(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mod, nil
}

// saveModule writes a serialized IR module to disk.
func saveModule(path string, mod *ir.Module) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	if err := ir.EncodeModule(f, mod); err != nil {
		return fmt.Errorf("%s: failed to encode module: %w", path, err)
	}
	return f.Close()
}

// resolveConfig loads the TOML config when --config is set and applies any
// explicitly passed flag overrides on top.
func resolveConfig(cmd *cobra.Command) (libcall.Config, error) {
	var cfg libcall.Config

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return cfg, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		cfg, err = libcall.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
	}

	if cmd.Flags().Changed("prelink") {
		cfg.PreLink, _ = cmd.Flags().GetBool("prelink")
	}
	if cmd.Flags().Changed("unsafe-math") {
		cfg.UnsafeMath, _ = cmd.Flags().GetBool("unsafe-math")
	}
	if cmd.Flags().Changed("use-native") {
		cfg.UseNative, _ = cmd.Flags().GetStringSlice("use-native")
	}

	return cfg, nil
}

// reportOutcome prints the pass result to stderr unless --quiet is set.
func reportOutcome(cmd *cobra.Command, pass string, changed bool) {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return
	}
	state := "unchanged"
	if changed {
		state = "modified"
		if colorEnabled(cmd, os.Stderr) {
			state = color.GreenString(state)
		}
	}
	fmt.Fprintf(os.Stderr, "%s: module %s\n", pass, state)
}

// colorEnabled resolves the --color persistent flag against the terminal.
func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
