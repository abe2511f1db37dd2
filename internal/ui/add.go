package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		typ      string
		start    string
		end      string
		workdays int
		parent   string
		after    []string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new task",
		Long: `Add a task, milestone or summary to the chart.

Without --start the task starts on the next working day. --workdays sets
the end date by counting working days from the start instead of --end.`,
		Example: `  gantt add "Design" --start=2025-01-06 --end=2025-01-10
  gantt add "Build" --start=monday --workdays=5 --after=1a2b3c4d
  gantt add "Launch" --type=milestone --start=2025-01-20
  gantt add "Phase 1" --type=summary --start=2025-01-06 --end=2025-01-17`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if workdays > 0 && end != "" {
				return fmt.Errorf("--end and --workdays are mutually exclusive")
			}

			cal, err := a.config.Calendar()
			if err != nil {
				return err
			}
			region := a.config.Schedule.HolidayRegion

			startDate := cal.NextWorkingDay(dateutil.Today(), region)
			if start != "" {
				if startDate, err = parseDateArg(start); err != nil {
					return fmt.Errorf("start date: %w", err)
				}
			}

			endStr := end
			if endStr != "" {
				endDate, err := parseDateArg(endStr)
				if err != nil {
					return fmt.Errorf("end date: %w", err)
				}
				endStr = dateutil.Format(endDate)
			}
			if workdays > 0 {
				endStr = dateutil.Format(cal.AddWorkingDays(startDate, workdays, region))
			}

			t, err := task.New(args[0], typ, dateutil.Format(startDate), endStr)
			if err != nil {
				return err
			}

			ctx := context.Background()
			existing, err := a.repo.ListTasks(ctx)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			if parent != "" {
				p, err := findTask(existing, parent)
				if err != nil {
					return fmt.Errorf("parent: %w", err)
				}
				t.ParentID = p.ID
			}
			if t.Dependencies, err = findTasks(existing, after); err != nil {
				return fmt.Errorf("dependency: %w", err)
			}

			if err := a.repo.CreateTask(ctx, t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}
			a.log.WithField("task_id", t.ID).Info("task created")

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s [%s] %s → %s\n",
				shortID(t.ID),
				t.Name,
				t.Type,
				dateutil.Format(t.StartDate),
				dateutil.Format(t.EndDate),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", string(task.TypeTask), "Type: task, milestone or summary")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD or a weekday, default: next working day)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, default: start)")
	cmd.Flags().IntVar(&workdays, "workdays", 0, "Span in working days from the start")
	cmd.Flags().StringVar(&parent, "parent", "", "Summary task this task belongs to")
	cmd.Flags().StringSliceVar(&after, "after", nil, "Predecessor task IDs (finish-to-start)")

	return cmd
}

// parseDateArg accepts YYYY-MM-DD or a relative keyword such as "tomorrow"
// or "next-monday".
func parseDateArg(s string) (time.Time, error) {
	if d, err := dateutil.ParseDate(s); err == nil {
		return d, nil
	}
	return dateutil.ParseRelativeDate(s, time.Now())
}
