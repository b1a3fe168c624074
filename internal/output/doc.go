// Package output provides styled terminal output for clever-review.
//
// Logging goes through charmbracelet/log on stderr so that the streamed
// output of child processes (git, clever) keeps stdout to itself. Styles
// come from lipgloss and honour NO_COLOR.
//
// With --json, text logging is suppressed and commands print a single
// JSON envelope on stdout instead.
package output
