package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kjourdan1/clever-review/internal/ci"
	"github.com/kjourdan1/clever-review/internal/clever"
	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/deploy"
	"github.com/kjourdan1/clever-review/internal/exitcode"
	"github.com/kjourdan1/clever-review/internal/output"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Create the review app, attach its domain and deploy",
	Long: `Runs, in order and stopping at the first failure:

  1. shallow-check   git rev-parse --is-shallow-repository must not be "true"
  2. create          clever create --type <type> <alias> --alias <alias> --region <region> --org <orgaID>
  3. domain          clever "domain add" <domain>
  4. deploy          clever deploy

Any failure is reported once to the CI host as an error annotation and
the command exits non-zero. Nothing is retried or rolled back.`,
	RunE: runDeploy,
}

var (
	splitDomainArgs bool
	failurePrefix   string
)

const keyFailurePrefix = "failurePrefix"

func init() {
	f := deployCmd.Flags()
	f.String(config.FlagNames[config.InputOrgaID], "", "organisation owning the app")
	f.String(config.FlagNames[config.InputType], "", "application type (default "+clever.DefaultType+")")
	f.String(config.FlagNames[config.InputRegion], "", "deployment zone (default "+clever.DefaultRegion+")")
	f.String(config.FlagNames[config.InputDomain], "", "domain to attach")
	f.String(config.FlagNames[config.InputAlias], "", "application name and alias (default "+clever.DefaultAlias+")")
	f.String(config.FlagNames[config.InputCleverCLI], "", "path to the clever executable")
	f.BoolVar(&splitDomainArgs, "split-domain-args", false, `pass "domain add" to the CLI as two arguments`)
	f.StringVar(&failurePrefix, "failure-prefix", ci.DefaultFailurePrefix, "text prepended to the CI failure message")

	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	reporter := newReporter(cmd)
	fail := func(err error) error {
		reporter.SetFailed(err)
		return exitcode.Reported(err)
	}

	v, err := loadViper()
	if err != nil {
		return fail(err)
	}
	src, err := config.NewViperSource(v, cmd.Flags())
	if err != nil {
		return fail(err)
	}
	args, err := config.Load(src)
	if err != nil {
		if jsonOutput {
			output.JSONError(err, nil)
		}
		return fail(err)
	}

	report, err := deploy.Run(cmd.Context(), args, deploy.Options{
		Executor:        newExecutor(),
		Reporter:        reporter,
		Groups:          ci.IsGitHubActions(),
		SplitDomainArgs: splitDomainArgs,
	})
	if summaryErr := reporter.AppendSummary(deploy.Summary(args, report)); summaryErr != nil {
		output.Warn("could not write job summary", "error", summaryErr)
	}
	if err != nil {
		if jsonOutput {
			output.JSONError(err, report)
		}
		return fail(err)
	}

	alias := args.Alias
	if alias == "" {
		alias = clever.DefaultAlias
	}
	if err := errors.Join(
		reporter.SetOutput("alias", alias),
		reporter.SetOutput("domain", args.Domain),
	); err != nil {
		output.Warn("could not write step outputs", "error", err)
	}

	if jsonOutput {
		output.JSON(report)
		return nil
	}
	output.Success("Review app deployed", "alias", alias)
	return nil
}

// newReporter builds the CI reporter before any configuration is read so
// that configuration errors are reported the same way as failed steps.
// A failurePrefix input set to "" disables the prefix.
func newReporter(cmd *cobra.Command) *ci.Reporter {
	pv := viper.New()
	pv.AllowEmptyEnv(true)
	_ = pv.BindEnv(keyFailurePrefix, config.InputEnvName(keyFailurePrefix))
	_ = pv.BindPFlag(keyFailurePrefix, cmd.Flags().Lookup("failure-prefix"))
	return ci.NewReporter(cmd.OutOrStdout(), ci.WithPrefix(pv.GetString(keyFailurePrefix)))
}
