package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"helios/internal/driver"
	"helios/internal/ir"
)

var usenativeCmd = &cobra.Command{
	Use:   "use-native [flags] module.hmod",
	Short: "Substitute native_ math variants in an IR module",
	Long:  `Use-native redirects eligible math library calls to their fast approximate native_ variants`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUseNative,
}

func init() {
	usenativeCmd.Flags().String("config", "", "TOML config file with a [simplify] table")
	usenativeCmd.Flags().Bool("prelink", false, "declare unresolved library symbols on demand")
	usenativeCmd.Flags().Bool("unsafe-math", false, "enable value-changing rewrites for all call sites")
	usenativeCmd.Flags().StringSlice("use-native", nil, "functions eligible for native_ substitution (default all)")
	usenativeCmd.Flags().StringP("output", "o", "", "write the transformed module to this path")
	usenativeCmd.Flags().Bool("dump", false, "print the transformed module as text to stdout")
}

func runUseNative(cmd *cobra.Command, args []string) error {
	mod, err := loadModule(args[0])
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.UseNative) == 0 {
		// The default flag value only applies when the config is silent too.
		cfg.UseNative = []string{"all"}
	}

	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	changed, err := driver.UseNativeModule(cmd.Context(), mod, driver.Options{
		Config: cfg,
		Jobs:   jobs,
	})
	if err != nil {
		return fmt.Errorf("use-native failed: %w", err)
	}

	reportOutcome(cmd, "use-native", changed)

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := saveModule(output, mod); err != nil {
			return err
		}
	}
	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		if err := ir.DumpModule(os.Stdout, mod); err != nil {
			return err
		}
	}
	return nil
}
