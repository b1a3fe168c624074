// clever-review – review apps on Clever Cloud from CI.
// Reads CI inputs, refuses shallow checkouts, then drives the clever CLI
// through create, domain add and deploy, reporting failures to the CI host.
package main

import (
	"os"
	"time"

	"github.com/kjourdan1/clever-review/cmd"
	"github.com/kjourdan1/clever-review/internal/audit"
	"github.com/kjourdan1/clever-review/internal/exitcode"
	"github.com/kjourdan1/clever-review/internal/output"
	_ "github.com/kjourdan1/clever-review/schemas"
)

func main() {
	start := time.Now()
	err := cmd.Execute()
	code := exitcode.Of(err)

	result := "success"
	if err != nil {
		result = "failure"
	}
	if auditErr := audit.Write(audit.BuildEvent(os.Args, os.Getenv, result, code, time.Since(start))); auditErr != nil {
		output.Debug("could not write audit log", "error", auditErr)
	}

	if err != nil {
		if !exitcode.IsSilent(err) {
			output.PrintError(err)
		}
		os.Exit(code)
	}
}
