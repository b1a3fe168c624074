// Package gitguard refuses to deploy from a shallow git checkout.
//
// Deployments push the full commit history to the platform, so a shallow
// clone would silently produce a broken deployment. The guard only
// detects the condition; it never unshallows the repository.
package gitguard

import (
	"context"
	"fmt"
	"strings"

	"github.com/kjourdan1/clever-review/internal/shell"
)

// ShallowCheckArgs is the git invocation used to detect a shallow checkout.
var ShallowCheckArgs = []string{"rev-parse", "--is-shallow-repository"}

// Remediation is the workflow snippet that fetches full history.
const Remediation = ` - uses: actions/checkout@v3
   with:
     fetch-depth: 0
`

// ShallowCopyError is returned when the working copy is shallow.
type ShallowCopyError struct{}

func (e *ShallowCopyError) Error() string {
	return "This action requires an unshallow working copy.\n" +
		"-> Use the following step before running this action:\n" +
		Remediation
}

// Fix returns the remediation hint shown by doctor.
func (e *ShallowCopyError) Fix() string {
	return "checkout with full history (actions/checkout with fetch-depth: 0, or git fetch --unshallow)"
}

// IsShallow reports whether the repository in the executor's working
// directory is a shallow clone.
func IsShallow(ctx context.Context, ex shell.Executor) (bool, error) {
	out, err := ex.Output(ctx, shell.Command{Name: "git", Args: ShallowCheckArgs})
	if err != nil {
		return false, fmt.Errorf("checking for shallow copy: %w", err)
	}
	return strings.TrimSpace(out) == "true", nil
}

// CheckShallow returns *ShallowCopyError for a shallow repository and nil
// otherwise. git failures are returned as-is.
func CheckShallow(ctx context.Context, ex shell.Executor) error {
	shallow, err := IsShallow(ctx, ex)
	if err != nil {
		return err
	}
	if shallow {
		return &ShallowCopyError{}
	}
	return nil
}
