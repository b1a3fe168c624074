package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/kjourdan1/clever-review/internal/output"
)

// StatusIcon returns the icon for a check status.
func StatusIcon(s Status) string {
	if output.NoColor() {
		switch s {
		case StatusPass:
			return "[PASS]"
		case StatusFail:
			return "[FAIL]"
		case StatusWarn:
			return "[WARN]"
		default:
			return "[????]"
		}
	}
	switch s {
	case StatusPass:
		return "✅"
	case StatusFail:
		return "❌"
	case StatusWarn:
		return "⚠️"
	default:
		return "❓"
	}
}

var categoryLabels = map[string]string{
	"tool": "Required Tools",
	"repo": "Repository",
	"auth": "Credentials",
}

// PrintResults renders the summary to w, or as a JSON envelope in JSON mode.
func PrintResults(w io.Writer, summary Summary) {
	if output.JSONMode {
		output.JSON(summary)
		return
	}

	lastCategory := ""
	for _, r := range summary.Results {
		if r.Category != lastCategory {
			printCategoryHeader(w, r.Category)
			lastCategory = r.Category
		}
		printCheckResult(w, r)
	}
	fmt.Fprintln(w)
	printSummaryLine(summary)
}

func printCategoryHeader(w io.Writer, cat string) {
	label, ok := categoryLabels[cat]
	if !ok {
		label = cat
	}
	fmt.Fprintln(w)
	if output.NoColor() {
		fmt.Fprintf(w, "--- %s ---\n", label)
		return
	}
	fmt.Fprintln(w, output.Render(output.StyleTitle, "━━ "+label+" ━━"))
}

func printCheckResult(w io.Writer, r CheckResult) {
	fmt.Fprintf(w, "  %s  %s\n", StatusIcon(r.Status), r.Message)
	if r.Fix == "" || r.Status == StatusPass {
		return
	}
	if output.NoColor() {
		fmt.Fprintf(w, "       Fix: %s\n", r.Fix)
		return
	}
	fmt.Fprintf(w, "       💡 %s\n", output.Render(output.StyleMuted, r.Fix))
}

func printSummaryLine(s Summary) {
	var parts []string
	if s.TotalPass > 0 {
		parts = append(parts, fmt.Sprintf("%d passed", s.TotalPass))
	}
	if s.TotalWarn > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", s.TotalWarn))
	}
	if s.TotalFail > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.TotalFail))
	}
	line := strings.Join(parts, ", ")

	switch {
	case s.HasFailure:
		output.Fail("Doctor found issues: " + line)
	case s.TotalWarn > 0:
		output.Warn("Doctor completed with warnings: " + line)
	default:
		output.Success(fmt.Sprintf("All checks passed (%d)", s.TotalPass))
	}
}
