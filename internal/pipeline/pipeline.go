// Package pipeline runs a fixed sequence of named steps.
//
// Steps run one after the other. The first failing step stops the run:
// later steps are reported as skipped and nothing is rolled back or
// retried.
package pipeline

import (
	"context"
	"fmt"
	"time"
)

// Status is the outcome of a step.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Step is a single named unit of work.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepResult records what happened to one step.
type StepResult struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// Report is the ordered outcome of a run.
type Report struct {
	Steps []StepResult `json:"steps"`
}

// Failed returns the failing step, if any.
func (r *Report) Failed() (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Status == StatusFail {
			return s, true
		}
	}
	return StepResult{}, false
}

// StepError wraps the error of the step that stopped the run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Hooks observe step execution. Nil hooks are ignored.
type Hooks struct {
	OnStart  func(step string)
	OnFinish func(result StepResult)
}

// Runner executes steps.
type Runner struct {
	Hooks Hooks
	now   func() time.Time
}

// NewRunner returns a runner with the given hooks.
func NewRunner(hooks Hooks) *Runner {
	return &Runner{Hooks: hooks, now: time.Now}
}

// Run executes steps in order. It returns the report and, when a step
// failed, a *StepError. A cancelled ctx fails the next step before it
// starts.
func (r *Runner) Run(ctx context.Context, steps []Step) (*Report, error) {
	now := r.now
	if now == nil {
		now = time.Now
	}
	report := &Report{Steps: make([]StepResult, 0, len(steps))}

	var failure *StepError
	for _, step := range steps {
		if failure != nil {
			report.Steps = append(report.Steps, StepResult{Name: step.Name, Status: StatusSkip})
			continue
		}

		if r.Hooks.OnStart != nil {
			r.Hooks.OnStart(step.Name)
		}
		start := now()
		err := ctx.Err()
		if err == nil {
			err = step.Run(ctx)
		}
		result := StepResult{
			Name:       step.Name,
			Status:     StatusPass,
			DurationMs: now().Sub(start).Milliseconds(),
		}
		if err != nil {
			result.Status = StatusFail
			result.Error = err.Error()
			failure = &StepError{Step: step.Name, Err: err}
		}
		report.Steps = append(report.Steps, result)
		if r.Hooks.OnFinish != nil {
			r.Hooks.OnFinish(result)
		}
	}

	if failure != nil {
		return report, failure
	}
	return report, nil
}
