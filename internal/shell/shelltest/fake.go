// Package shelltest provides a recording shell.Executor for tests.
package shelltest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kjourdan1/clever-review/internal/shell"
)

// Response is the canned result of a command.
type Response struct {
	Output string
	Err    error
}

// Fake records every command and answers from canned responses keyed by
// "name arg1 arg2". Unknown commands succeed with empty output unless
// Strict is set.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	Calls     []shell.Command
	Strict    bool
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{responses: make(map[string]Response)}
}

// Set registers the response for name+args.
func (f *Fake) Set(output string, err error, name string, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[Key(name, args...)] = Response{Output: output, Err: err}
}

// Key builds the lookup key for a command.
func Key(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// Output implements shell.Executor.
func (f *Fake) Output(_ context.Context, cmd shell.Command) (string, error) {
	return f.answer(cmd)
}

// Run implements shell.Executor.
func (f *Fake) Run(_ context.Context, cmd shell.Command) error {
	_, err := f.answer(cmd)
	return err
}

func (f *Fake) answer(cmd shell.Command) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, cmd)
	r, ok := f.responses[Key(cmd.Name, cmd.Args...)]
	if !ok && f.Strict {
		return "", fmt.Errorf("unexpected command: %s", Key(cmd.Name, cmd.Args...))
	}
	return r.Output, r.Err
}

// Invocations returns the argument lists of calls made to name.
func (f *Fake) Invocations(name string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]string
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, append([]string(nil), c.Args...))
		}
	}
	return out
}
