// Package deploy creates, wires and deploys a review app.
package deploy

import (
	"context"

	"github.com/kjourdan1/clever-review/internal/ci"
	"github.com/kjourdan1/clever-review/internal/clever"
	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/gitguard"
	"github.com/kjourdan1/clever-review/internal/output"
	"github.com/kjourdan1/clever-review/internal/pipeline"
	"github.com/kjourdan1/clever-review/internal/shell"
)

// Step names, in execution order.
const (
	StepShallowCheck = "shallow-check"
	StepCreate       = "create"
	StepDomain       = "domain"
	StepDeploy       = "deploy"
)

// Options wires the collaborators of a run.
type Options struct {
	Executor shell.Executor
	// Reporter receives debug messages and, with Groups set, one log
	// group per step. May be nil.
	Reporter *ci.Reporter
	Groups   bool
	// SplitDomainArgs passes `domain add` to the CLI as two arguments.
	SplitDomainArgs bool
}

// Steps returns the deployment sequence for args.
func Steps(args *config.Arguments, opts Options) []pipeline.Step {
	client := clever.NewClient(args, opts.Executor)
	client.SplitDomainArgs = opts.SplitDomainArgs

	return []pipeline.Step{
		{
			Name: StepShallowCheck,
			Run: func(ctx context.Context) error {
				return gitguard.CheckShallow(ctx, opts.Executor)
			},
		},
		{
			Name: StepCreate,
			Run: func(ctx context.Context) error {
				output.Debug("Clever CLI path: " + client.Binary())
				if opts.Reporter != nil {
					opts.Reporter.Debug("Clever CLI path: " + client.Binary())
				}
				return client.Create(ctx)
			},
		},
		{Name: StepDomain, Run: client.AddDomain},
		{Name: StepDeploy, Run: client.Deploy},
	}
}

// Run executes the deployment sequence and stops at the first failure.
func Run(ctx context.Context, args *config.Arguments, opts Options) (*pipeline.Report, error) {
	if opts.Executor == nil {
		opts.Executor = shell.NewOSExecutor()
	}
	runner := pipeline.NewRunner(hooks(opts))
	return runner.Run(ctx, Steps(args, opts))
}

func hooks(opts Options) pipeline.Hooks {
	grouped := opts.Groups && opts.Reporter != nil
	return pipeline.Hooks{
		OnStart: func(step string) {
			if grouped {
				opts.Reporter.Group(step)
			}
			output.Step(step)
		},
		OnFinish: func(res pipeline.StepResult) {
			if res.Status == pipeline.StatusPass {
				output.Success(res.Name, "durationMs", res.DurationMs)
			} else {
				output.Fail(res.Name, "durationMs", res.DurationMs)
			}
			if grouped {
				opts.Reporter.EndGroup()
			}
		},
	}
}
