package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/summary"
	"github.com/javiermolinar/gantt/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		workingDays bool
		verbose     bool
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in chart order",
		Long: `List every task the way the chart shows it: top-level tasks by
start date, each summary followed by its children.

With --working-days, or when working days are enabled in the config,
a working-day column is added.`,
		Example: `  gantt list
  gantt list --working-days --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			wd, err := a.workingDays(workingDays)
			if err != nil {
				return err
			}

			tasks, err := a.repo.ListTasks(context.Background())
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks yet. Add one with: gantt add \"Design\" --start=2025-01-06 --end=2025-01-10")
				return nil
			}

			s := summary.Summarize(tasks, wd)
			opts := PrintOpts{Verbose: verbose, WorkingDays: wd}
			nameWidth := opts.CalcMaxNameWidth(28)

			byID := task.NewMap(tasks)
			for _, row := range s.Rows {
				PrintTaskRow(out, row, byID, opts, nameWidth)
			}
			fmt.Fprintln(out, strings.Repeat("─", min(termWidth(), 74)))
			PrintSummary(out, s)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&workingDays, "working-days", "w", false, "Show working-day spans")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full task names")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
