package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/task"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task with its links",
		Long: `Display a task's dates, spans, parent, predecessors and successors.

The ID can be shortened to any unique prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			tasks, err := a.repo.ListTasks(context.Background())
			if err != nil {
				return fmt.Errorf("fetching tasks: %w", err)
			}
			t, err := findTask(tasks, args[0])
			if err != nil {
				return err
			}

			cal, err := a.config.Calendar()
			if err != nil {
				return err
			}
			byID := task.NewMap(tasks)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s  %s\n", colorFor(t).Sprint(typeMarker(t)+t.Name), formatMuted(t.ID))
			fmt.Fprintf(out, "  type      %s\n", t.Type)
			fmt.Fprintf(out, "  dates     %s → %s\n", dateutil.Format(t.StartDate), dateutil.Format(t.EndDate))
			fmt.Fprintf(out, "  span      %s, %d working\n",
				FormatDays(t.CalendarDays()),
				cal.CalculateWorkingDays(t.StartDate, t.EndDate, a.config.Schedule.HolidayRegion))

			if p, ok := byID.Get(t.ParentID); ok {
				fmt.Fprintf(out, "  parent    %s\n", p.Name)
			}
			if deps := dependencyNames(t, byID); deps != "" {
				fmt.Fprintf(out, "  after     %s\n", deps)
			}
			if succ := byID.Successors(t.ID); len(succ) > 0 {
				fmt.Fprintf(out, "  before    %s\n", joinNames(succ))
			}
			if t.IsSummary() {
				if children := byID.Children(t.ID); len(children) > 0 {
					fmt.Fprintf(out, "  children  %s\n", joinNames(children))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func joinNames(tasks []*task.Task) string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
