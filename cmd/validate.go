package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/exitcode"
	"github.com/kjourdan1/clever-review/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate review-app.yaml against its schema",
	Long: `Checks the configuration file (--config, default ./review-app.yaml) against
the embedded JSON Schema. Secrets are rejected: CLEVER_TOKEN and
CLEVER_SECRET belong in the CI secret store.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return exitcode.Wrap(exitcode.Config, output.WrapErrorWithFix(err,
			"cannot read "+path, "Run: clever-review init"))
	}
	result, err := config.ValidateYAML(data)
	if err != nil {
		return exitcode.Wrap(exitcode.Config, fmt.Errorf("schema validation error: %w", err))
	}

	if jsonOutput {
		output.JSON(result)
	} else if result.Valid {
		output.Success(path + " is valid")
	} else {
		for _, e := range result.Errors {
			output.Fail(fmt.Sprintf("%s: %s", e.Field, e.Description))
		}
	}

	if !result.Valid {
		return exitcode.Reported(exitcode.Wrap(exitcode.Config,
			fmt.Errorf("%s: %d schema error(s)", path, len(result.Errors))))
	}
	return nil
}
