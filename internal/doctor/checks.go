// Package doctor implements preflight checks for clever-review.
//
// It verifies that the Clever Cloud CLI and git are usable, that the
// checkout carries full history and that credentials are present, without
// creating anything on the platform.
package doctor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kjourdan1/clever-review/internal/clever"
	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/gitguard"
	"github.com/kjourdan1/clever-review/internal/shell"
	"github.com/kjourdan1/clever-review/internal/upgrade"
)

// Status represents the outcome of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusWarn Status = "warn"
)

// CheckResult is the outcome of running a single check.
type CheckResult struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Status   Status `json:"status"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// Env describes what the checks run against.
type Env struct {
	Executor  shell.Executor
	CleverCLI string
	// Lookup returns an environment variable; secrets are only tested for
	// presence and never echoed.
	Lookup func(name string) string
	// Updates, when set, is asked for the latest clever-tools release.
	Updates *upgrade.Client
}

// Check defines a single preflight check.
type Check struct {
	Name     string
	Category string // "tool", "repo", "auth"
	Critical bool   // failure makes doctor exit non-zero
	Run      func(ctx context.Context, env Env) CheckResult
}

// Summary holds the aggregated results of all checks.
type Summary struct {
	Results    []CheckResult `json:"results"`
	TotalPass  int           `json:"totalPass"`
	TotalFail  int           `json:"totalFail"`
	TotalWarn  int           `json:"totalWarn"`
	HasFailure bool          `json:"hasFailure"`
}

// RunAll executes all checks in order and returns a summary.
func RunAll(ctx context.Context, env Env) Summary {
	checks := AllChecks()
	results := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		r := c.Run(ctx, env)
		r.Name = c.Name
		r.Category = c.Category
		results = append(results, r)
	}
	return buildSummary(results, checks)
}

func buildSummary(results []CheckResult, checks []Check) Summary {
	s := Summary{Results: results}
	for i, r := range results {
		switch r.Status {
		case StatusPass:
			s.TotalPass++
		case StatusFail:
			s.TotalFail++
			if checks[i].Critical {
				s.HasFailure = true
			}
		case StatusWarn:
			s.TotalWarn++
		}
	}
	return s
}

// AllChecks returns the ordered list of checks.
func AllChecks() []Check {
	return []Check{
		checkCleverCLI(),
		checkGit(),
		checkHistory(),
		checkCredentials(),
	}
}

// MinGitVersion is the first git release with --is-shallow-repository.
const MinGitVersion = "2.15.0"

func checkCleverCLI() Check {
	return Check{
		Name:     "clever-cli",
		Category: "tool",
		Critical: true,
		Run: func(ctx context.Context, env Env) CheckResult {
			client := clever.NewClient(&config.Arguments{CleverCLI: env.CleverCLI}, env.Executor)
			out, err := client.Version(ctx)
			if err != nil {
				return CheckResult{
					Status:  StatusFail,
					Message: fmt.Sprintf("Clever CLI not usable at %s", env.CleverCLI),
					Fix:     "Install clever-tools (npm install -g clever-tools) or pass --clever-cli",
				}
			}
			version := regexp.MustCompile(`(\d+\.\d+\.\d+)`).FindString(out)
			if version == "" {
				return CheckResult{
					Status:  StatusPass,
					Message: fmt.Sprintf("clever unknown version (%s)", env.CleverCLI),
				}
			}
			if env.Updates != nil {
				info := upgrade.Check(ctx, env.Updates, upgrade.CLIPackage, version)
				if info.UpgradeAvail {
					return CheckResult{
						Status:  StatusWarn,
						Message: fmt.Sprintf("clever %s (%s), %s is available", version, env.CleverCLI, info.LatestVersion),
						Fix:     "npm install -g " + upgrade.CLIPackage + "@" + info.LatestVersion,
					}
				}
			}
			return CheckResult{
				Status:  StatusPass,
				Message: fmt.Sprintf("clever %s (%s)", version, env.CleverCLI),
			}
		},
	}
}

func checkGit() Check {
	return Check{
		Name:     "git",
		Category: "tool",
		Critical: true,
		Run: func(ctx context.Context, env Env) CheckResult {
			fix := "Install Git >= " + MinGitVersion + ": https://git-scm.com/downloads"
			out, err := env.Executor.Output(ctx, shell.Command{Name: "git", Args: []string{"version"}})
			if err != nil {
				return CheckResult{Status: StatusFail, Message: "git not found or not in PATH", Fix: fix}
			}
			m := regexp.MustCompile(`(\d+\.\d+\.\d+)`).FindStringSubmatch(out)
			if len(m) < 2 {
				return CheckResult{Status: StatusWarn, Message: "git found but could not parse version from output"}
			}
			cmp, err := upgrade.CompareVersions(m[1], MinGitVersion)
			if err != nil {
				return CheckResult{Status: StatusWarn, Message: "git found but could not parse version " + m[1]}
			}
			if cmp < 0 {
				return CheckResult{
					Status:  StatusFail,
					Message: fmt.Sprintf("git %s found, but >= %s required", m[1], MinGitVersion),
					Fix:     fix,
				}
			}
			return CheckResult{Status: StatusPass, Message: "git " + m[1]}
		},
	}
}

func checkHistory() Check {
	return Check{
		Name:     "git-history",
		Category: "repo",
		Critical: true,
		Run: func(ctx context.Context, env Env) CheckResult {
			shallow, err := gitguard.IsShallow(ctx, env.Executor)
			if err != nil {
				return CheckResult{
					Status:  StatusFail,
					Message: "Not inside a git working copy",
					Fix:     "Run clever-review from the repository checkout",
				}
			}
			if shallow {
				return CheckResult{
					Status:  StatusFail,
					Message: "Working copy is shallow",
					Fix:     (&gitguard.ShallowCopyError{}).Fix(),
				}
			}
			return CheckResult{Status: StatusPass, Message: "Working copy has full history"}
		},
	}
}

func checkCredentials() Check {
	return Check{
		Name:     "credentials",
		Category: "auth",
		Critical: true,
		Run: func(_ context.Context, env Env) CheckResult {
			var missing []string
			for _, name := range config.RequiredEnv {
				if env.Lookup == nil || env.Lookup(name) == "" {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				return CheckResult{
					Status:  StatusFail,
					Message: "Missing " + strings.Join(missing, ", "),
					Fix:     "Expose the secrets to the job: " + config.DocsURL,
				}
			}
			return CheckResult{Status: StatusPass, Message: strings.Join(config.RequiredEnv, " and ") + " are set"}
		},
	}
}
