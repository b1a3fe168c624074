package exitcode

import (
	"errors"

	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/gitguard"
	"github.com/kjourdan1/clever-review/internal/shell"
)

const (
	OK           = 0
	Generic      = 1
	Config       = 2
	Precondition = 3
	CLI          = 4
)

// Error attaches an exit code to an error. A Silent error has already
// been reported to the user and main only exits with its code.
type Error struct {
	Code   int
	Cause  error
	Silent bool
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap attaches code to err. It returns nil for a nil err.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Cause: err}
}

// Reported wraps err with its classified code and marks it as already
// shown to the user.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: Of(err), Cause: err, Silent: true}
}

// IsSilent reports whether err was already shown to the user.
func IsSilent(err error) bool {
	var coded *Error
	return errors.As(err, &coded) && coded.Silent
}

// Of classifies err into an exit code.
func Of(err error) int {
	if err == nil {
		return OK
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	var missing *config.MissingEnvError
	if errors.As(err, &missing) {
		return Config
	}

	var shallow *gitguard.ShallowCopyError
	if errors.As(err, &shallow) {
		return Precondition
	}

	var exit *shell.ExitError
	if errors.As(err, &exit) {
		return CLI
	}

	return Generic
}
