package deploy

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjourdan1/clever-review/internal/ci"
	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/gitguard"
	"github.com/kjourdan1/clever-review/internal/output"
	"github.com/kjourdan1/clever-review/internal/pipeline"
	"github.com/kjourdan1/clever-review/internal/shell"
	"github.com/kjourdan1/clever-review/internal/shell/shelltest"
)

const cli = "/opt/clever/bin/clever"

func quietLogs(t *testing.T) {
	t.Helper()
	prev := output.SetWriter(new(bytes.Buffer))
	t.Cleanup(func() { output.SetWriter(prev) })
}

func newExecutor(shallow string) *shelltest.Fake {
	ex := shelltest.New()
	ex.Set(shallow+"\n", nil, "git", gitguard.ShallowCheckArgs...)
	return ex
}

func TestRun_EndToEnd(t *testing.T) {
	quietLogs(t)
	ex := newExecutor("false")
	args := &config.Arguments{
		Token: "t1", Secret: "s1",
		Type: "nodejs", Alias: "pr-42", Region: "par", OrgaID: "org-1",
		Domain: "pr42.example.com", CleverCLI: cli,
	}

	report, err := Run(context.Background(), args, Options{Executor: ex})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"create", "--type", "nodejs", "pr-42", "--alias", "pr-42", "--region", "par", "--org", "org-1"},
		{"domain add", "pr42.example.com"},
		{"deploy"},
	}, ex.Invocations(cli))

	names := make([]string, 0, len(ex.Calls))
	for _, c := range ex.Calls {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"git", cli, cli, cli}, names, "guard runs first")

	require.Len(t, report.Steps, 4)
	for _, s := range report.Steps {
		assert.Equal(t, pipeline.StatusPass, s.Status, s.Name)
	}
}

func TestRun_Defaults(t *testing.T) {
	quietLogs(t)
	ex := newExecutor("false")

	_, err := Run(context.Background(), &config.Arguments{Token: "t", Secret: "s", CleverCLI: cli}, Options{Executor: ex})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"create", "--type", "static-apache", "review-app", "--alias", "review-app", "--region", "par", "--org", "not-an-org"},
		{"domain add", "not-a-domain"},
		{"deploy"},
	}, ex.Invocations(cli))
}

func TestRun_ShallowCopyStopsBeforeCLI(t *testing.T) {
	quietLogs(t)
	ex := newExecutor("true")

	report, err := Run(context.Background(), &config.Arguments{CleverCLI: cli}, Options{Executor: ex})

	var shallowErr *gitguard.ShallowCopyError
	require.ErrorAs(t, err, &shallowErr)
	assert.Contains(t, err.Error(), "fetch-depth: 0")
	assert.Empty(t, ex.Invocations(cli))

	assert.Equal(t, pipeline.StatusFail, report.Steps[0].Status)
	for _, s := range report.Steps[1:] {
		assert.Equal(t, pipeline.StatusSkip, s.Status)
	}
}

func TestRun_CreateFailureStopsSequence(t *testing.T) {
	quietLogs(t)
	ex := newExecutor("false")
	args := &config.Arguments{CleverCLI: cli, Alias: "pr-1"}
	createErr := &shell.ExitError{Command: shell.Command{Name: cli}, Code: 1}
	ex.Set("", createErr, cli,
		"create", "--type", "static-apache", "pr-1", "--alias", "pr-1", "--region", "par", "--org", "not-an-org")

	var out bytes.Buffer
	reporter := ci.NewReporter(&out)
	_, err := Run(context.Background(), args, Options{Executor: ex, Reporter: reporter})
	require.Error(t, err)
	assert.ErrorIs(t, err, createErr)

	invocations := ex.Invocations(cli)
	require.Len(t, invocations, 1)
	assert.Equal(t, "create", invocations[0][0])

	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepCreate, stepErr.Step)

	reporter.SetFailed(err)
	assert.Contains(t, out.String(), "::error::Not today, Satan: create: The process '"+cli+"' failed with exit code 1")
}

func TestRun_DomainFailureSkipsDeploy(t *testing.T) {
	quietLogs(t)
	ex := newExecutor("false")
	ex.Set("", &shell.ExitError{Command: shell.Command{Name: cli}, Code: 2}, cli, "domain add", "taken.example.com")

	report, err := Run(context.Background(), &config.Arguments{CleverCLI: cli, Domain: "taken.example.com"}, Options{Executor: ex})
	require.Error(t, err)

	for _, inv := range ex.Invocations(cli) {
		assert.NotEqual(t, []string{"deploy"}, inv)
	}
	failed, ok := report.Failed()
	require.True(t, ok)
	assert.Equal(t, StepDomain, failed.Name)
	assert.Equal(t, pipeline.StatusSkip, report.Steps[3].Status)
}

func TestRun_SplitDomainArgs(t *testing.T) {
	quietLogs(t)
	ex := newExecutor("false")

	_, err := Run(context.Background(), &config.Arguments{CleverCLI: cli, Domain: "a.example.com"},
		Options{Executor: ex, SplitDomainArgs: true})
	require.NoError(t, err)
	assert.Contains(t, ex.Invocations(cli), []string{"domain", "add", "a.example.com"})
}

func TestRun_GroupsAndDebug(t *testing.T) {
	quietLogs(t)
	ex := newExecutor("false")
	var out bytes.Buffer

	_, err := Run(context.Background(), &config.Arguments{CleverCLI: cli},
		Options{Executor: ex, Reporter: ci.NewReporter(&out), Groups: true})
	require.NoError(t, err)

	got := out.String()
	for _, step := range []string{StepShallowCheck, StepCreate, StepDomain, StepDeploy} {
		assert.Contains(t, got, "::group::"+step+"\n")
	}
	assert.Equal(t, 4, strings.Count(got, "::endgroup::"))
	assert.Contains(t, got, "::debug::Clever CLI path: "+cli)
}

func TestSummary(t *testing.T) {
	report := &pipeline.Report{Steps: []pipeline.StepResult{
		{Name: StepShallowCheck, Status: pipeline.StatusPass, DurationMs: 12},
		{Name: StepCreate, Status: pipeline.StatusFail, DurationMs: 900},
		{Name: StepDomain, Status: pipeline.StatusSkip},
	}}

	md := Summary(&config.Arguments{}, report)
	assert.Contains(t, md, "### Review app `review-app`")
	assert.Contains(t, md, "| shallow-check | ✅ pass | 12ms |")
	assert.Contains(t, md, "| create | ❌ fail | 900ms |")
	assert.Contains(t, md, "| domain | ⏭️ skip | 0ms |")
}
