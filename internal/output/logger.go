package output

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	logger   *log.Logger
	loggerMu sync.Mutex
	logLevel = log.InfoLevel
	logOut   io.Writer = os.Stderr

	// JSONMode suppresses text output; commands print a JSON envelope instead.
	JSONMode bool

	// Verbose enables debug-level output.
	Verbose bool
)

// Init configures the global logger. Called from the root command's
// PersistentPreRun.
func Init(verbose bool, jsonMode bool) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	Verbose = verbose
	JSONMode = jsonMode
	if verbose {
		logLevel = log.DebugLevel
	} else {
		logLevel = log.InfoLevel
	}
	logger = newLogger(logOut)
}

// SetWriter redirects log output and returns the previous writer.
func SetWriter(w io.Writer) io.Writer {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	prev := logOut
	logOut = w
	logger = newLogger(w)
	return prev
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           logLevel,
		Prefix:          "clever-review",
	})
	l.SetStyles(logStyles())
	return l
}

func getLogger() *log.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = newLogger(logOut)
	}
	return logger
}

// Info prints an informational message.
func Info(msg string, keyvals ...interface{}) {
	if JSONMode {
		return
	}
	getLogger().Info(msg, keyvals...)
}

// Warn prints a warning message.
func Warn(msg string, keyvals ...interface{}) {
	if JSONMode {
		return
	}
	getLogger().Warn(msg, keyvals...)
}

// Error prints an error message.
func Error(msg string, keyvals ...interface{}) {
	if JSONMode {
		return
	}
	getLogger().Error(msg, keyvals...)
}

// Debug prints a debug message (only visible with -v).
func Debug(msg string, keyvals ...interface{}) {
	if JSONMode {
		return
	}
	getLogger().Debug(msg, keyvals...)
}

// Success prints a success message with a checkmark prefix.
func Success(msg string, keyvals ...interface{}) {
	if NoColor() {
		Info("[OK] "+msg, keyvals...)
		return
	}
	Info("✅ "+msg, keyvals...)
}

// Fail prints a failure message with an X prefix.
func Fail(msg string, keyvals ...interface{}) {
	if NoColor() {
		Error("[FAIL] "+msg, keyvals...)
		return
	}
	Error("❌ "+msg, keyvals...)
}

// Step prints a progress message for a pipeline step.
func Step(msg string, keyvals ...interface{}) {
	if NoColor() {
		Info(">> "+msg, keyvals...)
		return
	}
	Info("▸ "+msg, keyvals...)
}
