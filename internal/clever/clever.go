// Package clever drives the Clever Cloud CLI.
//
// The argument shapes below are the contract with the CLI and are covered
// by tests; change them only together with the CLI version in use.
package clever

import (
	"context"

	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/shell"
)

// Values used when the matching input is empty.
const (
	DefaultType   = "static-apache"
	DefaultAlias  = "review-app"
	DefaultRegion = "par"
	DefaultOrg    = "not-an-org"
	DefaultDomain = "not-a-domain"
)

// DomainAddToken is passed to the CLI as a single argument by default.
const DomainAddToken = "domain add"

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CreateArgs returns the arguments of `clever create` for args.
func CreateArgs(args *config.Arguments) []string {
	alias := orDefault(args.Alias, DefaultAlias)
	return []string{
		"create",
		"--type", orDefault(args.Type, DefaultType),
		alias,
		"--alias", alias,
		"--region", orDefault(args.Region, DefaultRegion),
		"--org", orDefault(args.OrgaID, DefaultOrg),
	}
}

// DomainArgs returns the arguments of `clever domain add`. With split set,
// "domain" and "add" are passed as separate arguments.
func DomainArgs(domain string, split bool) []string {
	domain = orDefault(domain, DefaultDomain)
	if split {
		return []string{"domain", "add", domain}
	}
	return []string{DomainAddToken, domain}
}

// DeployArgs returns the arguments of `clever deploy`.
func DeployArgs() []string {
	return []string{"deploy"}
}

// Client runs CLI commands for a single set of arguments.
type Client struct {
	args     *config.Arguments
	executor shell.Executor
	// SplitDomainArgs passes `domain add` as two arguments.
	SplitDomainArgs bool
}

// NewClient returns a client invoking args.CleverCLI through executor.
func NewClient(args *config.Arguments, executor shell.Executor) *Client {
	return &Client{args: args, executor: executor}
}

// Binary returns the CLI path the client invokes.
func (c *Client) Binary() string {
	return c.args.CleverCLI
}

func (c *Client) run(ctx context.Context, cliArgs []string) error {
	return c.executor.Run(ctx, shell.Command{
		Name: c.args.CleverCLI,
		Args: cliArgs,
		Env: []string{
			config.EnvToken + "=" + c.args.Token,
			config.EnvSecret + "=" + c.args.Secret,
		},
	})
}

// Create creates the application.
func (c *Client) Create(ctx context.Context) error {
	return c.run(ctx, CreateArgs(c.args))
}

// AddDomain attaches the configured domain to the application.
func (c *Client) AddDomain(ctx context.Context) error {
	return c.run(ctx, DomainArgs(c.args.Domain, c.SplitDomainArgs))
}

// Deploy pushes the current commit to the application.
func (c *Client) Deploy(ctx context.Context) error {
	return c.run(ctx, DeployArgs())
}

// Version returns the CLI version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	return c.executor.Output(ctx, shell.Command{Name: c.args.CleverCLI, Args: []string{"version"}})
}
