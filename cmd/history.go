package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kjourdan1/clever-review/internal/audit"
	"github.com/kjourdan1/clever-review/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past clever-review runs",
	Long: `Displays the run history written by clever-review in JSONL format.

By default, reads ~/.clever-review/audit.log (or $CLEVER_REVIEW_AUDIT_LOG)
and prints the latest events. Use --alias to filter on one review app.`,
	RunE: runHistory,
}

var (
	historyAlias string
	historyLimit int
)

func init() {
	historyCmd.Flags().StringVar(&historyAlias, "alias", "", "filter by application alias")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max number of events to display")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	events, err := audit.Read()
	if err != nil {
		return output.WrapError(err, "cannot read run history")
	}

	filtered := make([]audit.Event, 0, len(events))
	for _, event := range events {
		if historyAlias != "" && event.Alias != historyAlias {
			continue
		}
		filtered = append(filtered, event)
	}
	if historyLimit > 0 && len(filtered) > historyLimit {
		filtered = filtered[len(filtered)-historyLimit:]
	}

	if jsonOutput {
		output.JSON(filtered)
		return nil
	}
	w := cmd.OutOrStdout()
	if len(filtered) == 0 {
		fmt.Fprintln(w, "No matching runs.")
		return nil
	}

	if output.NoColor() {
		color.NoColor = true
	}
	bold := color.New(color.Bold)
	bold.Fprintln(w, "clever-review history")
	for _, event := range filtered {
		status := color.New(color.FgGreen)
		if event.Result != "success" {
			status = color.New(color.FgRed)
		}
		status.Fprintf(w, "  %-7s", event.Result)
		fmt.Fprintf(w, "  %s  op=%s", event.Timestamp, event.Operation)
		if event.Alias != "" {
			fmt.Fprintf(w, "  alias=%s", event.Alias)
		}
		if event.Region != "" {
			fmt.Fprintf(w, "  region=%s", event.Region)
		}
		fmt.Fprintf(w, "  exit=%d  duration=%dms\n", event.ExitCode, event.DurationMs)
	}
	return nil
}
