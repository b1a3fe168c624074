// Package ci signals results to the CI host through GitHub Actions
// workflow commands (::error::, ::debug::, ::group::) and the
// GITHUB_OUTPUT / GITHUB_STEP_SUMMARY files.
//
// The reporter never terminates the process; callers turn a failed run
// into an exit code.
package ci

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// DefaultFailurePrefix starts every failure message.
const DefaultFailurePrefix = "Not today, Satan: "

// Reporter writes workflow commands to out.
type Reporter struct {
	out    io.Writer
	prefix string
	getenv func(string) string

	mu     sync.Mutex
	failed bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithPrefix overrides the failure prefix.
func WithPrefix(prefix string) Option {
	return func(r *Reporter) { r.prefix = prefix }
}

// WithGetenv overrides how GITHUB_* variables are looked up.
func WithGetenv(getenv func(string) string) Option {
	return func(r *Reporter) { r.getenv = getenv }
}

// NewReporter returns a reporter writing to out (stdout when nil).
func NewReporter(out io.Writer, opts ...Option) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	r := &Reporter{out: out, prefix: DefaultFailurePrefix, getenv: os.Getenv}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsGitHubActions reports whether the process runs inside GitHub Actions.
func IsGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Message returns the failure text reported for err.
func (r *Reporter) Message(err error) string {
	return r.prefix + err.Error()
}

// SetFailed reports err as the single failure of the run.
func (r *Reporter) SetFailed(err error) {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()
	r.command("error", r.Message(err))
}

// Failed reports whether SetFailed was called.
func (r *Reporter) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Debug writes a debug message, shown when step debug logging is enabled.
func (r *Reporter) Debug(msg string) {
	r.command("debug", msg)
}

// Group starts a collapsible log group.
func (r *Reporter) Group(name string) {
	r.command("group", name)
}

// EndGroup closes the current log group.
func (r *Reporter) EndGroup() {
	fmt.Fprintln(r.out, "::endgroup::")
}

func (r *Reporter) command(name, msg string) {
	fmt.Fprintf(r.out, "::%s::%s\n", name, escapeData(msg))
}

// escapeData escapes a workflow command payload.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// SetOutput appends a step output to $GITHUB_OUTPUT. It is a no-op outside
// GitHub Actions.
func (r *Reporter) SetOutput(name, value string) error {
	path := r.getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}
	var entry string
	if strings.ContainsAny(value, "\r\n") {
		delim, err := delimiter()
		if err != nil {
			return err
		}
		entry = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delim, value, delim)
	} else {
		entry = fmt.Sprintf("%s=%s\n", name, value)
	}
	return appendFile(path, entry)
}

// AppendSummary appends markdown to $GITHUB_STEP_SUMMARY. It is a no-op
// outside GitHub Actions.
func (r *Reporter) AppendSummary(markdown string) error {
	path := r.getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		return nil
	}
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	return appendFile(path, markdown)
}

func delimiter() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating output delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(b), nil
}

func appendFile(path, data string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
