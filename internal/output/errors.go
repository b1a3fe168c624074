package output

import (
	"errors"
	"fmt"
)

// CLIError is a user-facing error carrying an optional remediation hint.
type CLIError struct {
	Message string // what went wrong
	Cause   error  // underlying error (optional)
	Fix     string // suggested fix (optional)
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewErrorWithFix creates a CLIError with a message and suggested fix.
func NewErrorWithFix(message, fix string) *CLIError {
	return &CLIError{Message: message, Fix: fix}
}

// WrapError wraps err with a message.
func WrapError(err error, message string) *CLIError {
	return &CLIError{Message: message, Cause: err}
}

// WrapErrorWithFix wraps err with a message and suggested fix.
func WrapErrorWithFix(err error, message, fix string) *CLIError {
	return &CLIError{Message: message, Cause: err, Fix: fix}
}

// PrintError logs err to stderr, followed by the fix of the first CLIError
// found in its chain. In JSON mode it prints an error envelope instead.
func PrintError(err error) {
	if JSONMode {
		JSONError(err, nil)
		return
	}

	Error(err.Error())
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Fix != "" {
		if NoColor() {
			Info("Fix: " + cliErr.Fix)
		} else {
			Info("💡 " + cliErr.Fix)
		}
	}
}
