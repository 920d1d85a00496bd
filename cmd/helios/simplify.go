package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"helios/internal/driver"
	"helios/internal/ir"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] module.hmod",
	Short: "Simplify math library calls in an IR module",
	Long:  `Simplify folds and rewrites math library calls: constant folding, power identities, sincos fusion, intrinsic and pipe specialization`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSimplify,
}

func init() {
	simplifyCmd.Flags().String("config", "", "TOML config file with a [simplify] table")
	simplifyCmd.Flags().Bool("prelink", false, "declare unresolved library symbols on demand")
	simplifyCmd.Flags().Bool("unsafe-math", false, "enable value-changing rewrites for all call sites")
	simplifyCmd.Flags().StringSlice("use-native", nil, "functions eligible for native_ substitution")
	simplifyCmd.Flags().StringP("output", "o", "", "write the transformed module to this path")
	simplifyCmd.Flags().Bool("dump", false, "print the transformed module as text to stdout")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	mod, err := loadModule(args[0])
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	changed, err := driver.SimplifyModule(cmd.Context(), mod, driver.Options{
		Config: cfg,
		Jobs:   jobs,
	})
	if err != nil {
		return fmt.Errorf("simplify failed: %w", err)
	}

	reportOutcome(cmd, "simplify", changed)

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
