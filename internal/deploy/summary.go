package deploy

import (
	"fmt"
	"strings"

	"github.com/kjourdan1/clever-review/internal/clever"
	"github.com/kjourdan1/clever-review/internal/config"
	"github.com/kjourdan1/clever-review/internal/pipeline"
)

// Summary renders a markdown table of the run for the CI job summary.
func Summary(args *config.Arguments, report *pipeline.Report) string {
	var b strings.Builder
	alias := args.Alias
	if alias == "" {
		alias = clever.DefaultAlias
	}
	fmt.Fprintf(&b, "### Review app `%s`\n\n", alias)
	b.WriteString("| Step | Status | Duration |\n|---|---|---|\n")
	for _, s := range report.Steps {
		fmt.Fprintf(&b, "| %s | %s | %dms |\n", s.Name, statusIcon(s.Status), s.DurationMs)
	}
	return b.String()
}

func statusIcon(s pipeline.Status) string {
	switch s {
	case pipeline.StatusPass:
		return "✅ pass"
	case pipeline.StatusFail:
		return "❌ fail"
	default:
		return "⏭️ skip"
	}
}
