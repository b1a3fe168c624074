package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// NoColor reports whether colored output is disabled (https://no-color.org/).
func NoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

var (
	ColorWarning = lipgloss.Color("#F39C12")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#95A5A6")
	ColorAccent  = lipgloss.Color("#9B59B6")
)

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Render applies style to s unless NO_COLOR is set.
func Render(style lipgloss.Style, s string) string {
	if NoColor() {
		return s
	}
	return style.Render(s)
}

// logStyles returns the level styles used by the logger. Level labels are
// tinted with the palette above; NO_COLOR gets the library defaults, which
// already drop colors on non-TTY writers.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	if NoColor() {
		return styles
	}
	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].Foreground(ColorAccent)
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(ColorWarning)
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(ColorError)
	styles.Levels[log.DebugLevel] = styles.Levels[log.DebugLevel].Foreground(ColorMuted)
	return styles
}
