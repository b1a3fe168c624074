// Package cmd implements the Cobra-based CLI for clever-review.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/exitcode"
	"github.com/kjourdan1/clever-review/internal/output"
	"github.com/kjourdan1/clever-review/internal/shell"
)

var (
	cfgFile    string
	verbosity  int
	jsonOutput bool
	ciMode     bool
)

// newExecutor builds the process executor; swapped in tests.
var newExecutor = func() shell.Executor {
	return shell.NewOSExecutor()
}

// rootCmd is the top-level command for clever-review.
var rootCmd = &cobra.Command{
	Use:   "clever-review",
	Short: "Deploy review apps to Clever Cloud from CI",
	Long: `clever-review creates a Clever Cloud application for a change under review,
attaches its domain and deploys the current commit, driving the clever CLI.

Secrets are read from CLEVER_TOKEN and CLEVER_SECRET. Other inputs come from
GitHub Actions step inputs (INPUT_ORGAID, INPUT_TYPE, INPUT_REGION,
INPUT_DOMAIN, INPUT_ALIAS), from flags, or from review-app.yaml.

Workflow: init → validate → doctor → deploy`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.Init(verbosity > 0, jsonOutput)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFileName+" when present)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v, -vv)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON (machine-readable)")
	rootCmd.PersistentFlags().BoolVar(&ciMode, "ci", false, "strict non-interactive mode (fails when required inputs are missing)")
}

func effectiveCIMode() bool {
	if ciMode {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(os.Getenv("CI")), "true")
}

// configPath returns the config file to use, or "" when there is none.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(config.DefaultFileName); err == nil {
		return config.DefaultFileName
	}
	return ""
}

// loadViper returns a fresh viper instance reading the config file, if
// any, after checking it against the schema.
func loadViper() (*viper.Viper, error) {
	v := viper.New()
	path := configPath()
	if path == "" {
		return v, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.Config, fmt.Errorf("reading config file %s: %w", path, err))
	}
	result, err := config.ValidateYAML(data)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.Config, fmt.Errorf("validating %s: %w", path, err))
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Field+": "+e.Description)
		}
		return nil, exitcode.Wrap(exitcode.Config, output.WrapErrorWithFix(
			fmt.Errorf("%s", strings.Join(msgs, "; ")),
			"invalid config file "+path,
			"Run: clever-review validate --config "+path,
		))
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, exitcode.Wrap(exitcode.Config, fmt.Errorf("loading config file %s: %w", path, err))
	}
	output.Debug("Using config file", "path", v.ConfigFileUsed())
	return v, nil
}
