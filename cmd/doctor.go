package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/doctor"
	"github.com/kjourdan1/clever-review/internal/exitcode"
	"github.com/kjourdan1/clever-review/internal/output"
	"github.com/kjourdan1/clever-review/internal/upgrade"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check prerequisites without deploying anything",
	Long: `Verify that the clever CLI and git are installed, that the working copy
has full history and that CLEVER_TOKEN and CLEVER_SECRET are set.
With --check-updates the CLI version is compared with the latest
clever-tools release on the npm registry.

Each check reports ✅ (pass), ❌ (fail), or ⚠️ (warning) with an
actionable fix suggestion.

Exit code 0 if all critical checks pass, 3 otherwise.`,
	RunE: runDoctor,
}

var doctorCheckUpdates bool

func init() {
	doctorCmd.Flags().String(config.FlagNames[config.InputCleverCLI], "", "path to the clever executable")
	doctorCmd.Flags().BoolVar(&doctorCheckUpdates, "check-updates", false, "compare the clever CLI with the latest clever-tools release on npm")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	v, err := loadViper()
	if err != nil {
		return err
	}
	src, err := config.NewViperSource(v, cmd.Flags())
	if err != nil {
		return err
	}

	env := doctor.Env{
		Executor:  newExecutor(),
		CleverCLI: config.ResolveCLI(src.Input(config.InputCleverCLI)),
		Lookup:    src.Env,
	}
	if doctorCheckUpdates {
		env.Updates = upgrade.NewClient()
	}

	var summary doctor.Summary
	_ = output.WithSpinner("Running preflight checks", effectiveCIMode() || jsonOutput, func() error {
		summary = doctor.RunAll(cmd.Context(), env)
		return nil
	})
	doctor.PrintResults(cmd.OutOrStdout(), summary)

	if summary.HasFailure {
		return exitcode.Reported(exitcode.Wrap(exitcode.Precondition,
			fmt.Errorf("doctor: %d critical check(s) failed", summary.TotalFail)))
	}
	return nil
}
