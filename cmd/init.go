package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kjourdan1/clever-review/internal/clever"
	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/exitcode"
	"github.com/kjourdan1/clever-review/internal/output"
	"github.com/kjourdan1/clever-review/internal/template"
	"github.com/kjourdan1/clever-review/internal/wizard"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a review-app.yaml for this repository",
	Long: `Asks for the organisation, application type, region, alias and domain and
writes them to review-app.yaml (or --config).

With --ci (or CI=true) nothing is asked: values come from the flags and
the file is only overwritten with --force.

With --workflow, .github/workflows/review-app.yml is also written next to
the config file: it deploys one review app per pull request, suffixing the
alias with the pull request number and using the domain as parent domain.`,
	RunE: runInit,
}

var (
	initValues   config.FileConfig
	initForce    bool
	initWorkflow bool
)

// newPrompter builds the wizard prompter; swapped in tests.
var newPrompter = func() wizard.Prompter { return wizard.NewSurveyPrompter() }

func init() {
	f := initCmd.Flags()
	f.StringVar(&initValues.OrgaID, config.FlagNames[config.InputOrgaID], "", "organisation owning the app")
	f.StringVar(&initValues.Type, config.FlagNames[config.InputType], "", "application type")
	f.StringVar(&initValues.Region, config.FlagNames[config.InputRegion], "", "deployment zone")
	f.StringVar(&initValues.Domain, config.FlagNames[config.InputDomain], "", "domain to attach")
	f.StringVar(&initValues.Alias, config.FlagNames[config.InputAlias], "", "application name and alias")
	f.StringVar(&initValues.CleverCLI, config.FlagNames[config.InputCleverCLI], "", "path to the clever executable")
	f.BoolVar(&initForce, "force", false, "overwrite an existing file")
	f.BoolVar(&initWorkflow, "workflow", false, "also generate "+template.WorkflowPath)
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultFileName
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	var cfg *config.FileConfig
	if effectiveCIMode() {
		if exists && !initForce {
			return exitcode.Wrap(exitcode.Config, output.NewErrorWithFix(
				path+" already exists", "Pass --force to overwrite it"))
		}
		values := initValues
		if values.Alias == "" {
			values.Alias = clever.DefaultAlias
		}
		if err := wizard.ValidateAlias(values.Alias); err != nil {
			return exitcode.Wrap(exitcode.Config, fmt.Errorf("invalid --alias: %w", err))
		}
		if err := wizard.ValidateDomain(values.Domain); err != nil {
			return exitcode.Wrap(exitcode.Config, fmt.Errorf("invalid --domain: %w", err))
		}
		cfg = &values
	} else {
		var err error
		cfg, err = wizard.NewInitWizard(newPrompter()).Run(initValues, exists && !initForce)
		if errors.Is(err, wizard.ErrAborted) {
			output.Warn(err.Error())
			return nil
		}
		if err != nil {
			return err
		}
	}

	// Nothing is written when the workflow would be refused.
	var workflow []template.RenderedFile
	writer := template.Writer{Force: initForce}
	root := filepath.Dir(path)
	if initWorkflow {
		var err error
		if workflow, err = renderWorkflow(cfg); err != nil {
			return err
		}
		if existing := writer.Conflicts(workflow, root); len(existing) > 0 {
			return exitcode.Wrap(exitcode.Config, output.NewErrorWithFix(
				strings.Join(existing, ", ")+" already exists", "Pass --force to overwrite it"))
		}
	}

	if err := config.SaveFile(cfg, path); err != nil {
		return err
	}
	written := []string{path}
	if initWorkflow {
		paths, err := writer.WriteAll(workflow, root)
		if err != nil {
			return err
		}
		written = append(written, paths...)
	}

	if jsonOutput {
		output.JSON(map[string]interface{}{"paths": written, "config": cfg})
		return nil
	}
	for _, p := range written {
		output.Success("Wrote " + p)
	}
	output.Info("Next: clever-review validate && clever-review doctor")
	return nil
}

func renderWorkflow(cfg *config.FileConfig) ([]template.RenderedFile, error) {
	engine, err := template.NewEngine()
	if err != nil {
		return nil, err
	}
	files, err := engine.RenderWorkflow(cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering workflow: %w", err)
	}
	return files, nil
}
