package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/validation"
)

func (a *App) resizeCmd() *cobra.Command {
	var (
		days      int
		fromStart bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "resize <task-id>",
		Short: "Move a task's end (or start) date",
		Long: `Resize a task by moving one of its edges, the way dragging a bar's
edge does in the chart. The other edge stays put.

A task must keep at least one day. Milestones and summaries cannot be
resized.`,
		Example: `  gantt resize 1a2b3c4d --days=2
  gantt resize 1a2b3c4d --days=-1 --start`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days == 0 {
				return fmt.Errorf("--days must not be zero")
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			wd, err := a.config.WorkingDays()
			if err != nil {
				return err
			}

			ctx := context.Background()
			tasks, err := a.repo.ListTasks(ctx)
			if err != nil {
				return fmt.Errorf("fetching tasks: %w", err)
			}
			t, err := findTask(tasks, args[0])
			if err != nil {
				return err
			}
			if t.IsMilestone() || t.IsSummary() {
				return fmt.Errorf("cannot resize a %s", t.Type)
			}

			byID := task.NewMap(tasks)
			u, ok := a.controller(byID, wd).Stretch(t, days, fromStart)
			if !ok {
				return fmt.Errorf("%w: %s", ErrNothingChanged, a.resizeReason(byID, t, days, fromStart))
			}

			out := cmd.OutOrStdout()
			updates := []task.Update{u}
			printUpdates(out, byID, updates)
			return a.commit(ctx, out, updates, dryRun)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Days to move the edge by (negative moves earlier)")
	cmd.Flags().BoolVar(&fromStart, "start", false, "Move the start date instead of the end date")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the new dates without saving")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func (a *App) resizeReason(tasks task.Map, t *task.Task, days int, fromStart bool) string {
	start, end := t.StartDate, dateutil.AddDays(t.EndDate, days)
	if fromStart {
		start, end = dateutil.AddDays(t.StartDate, days), t.EndDate
	}
	if dateutil.CalculateDuration(start, end) < 1 {
		return "a task must span at least one day"
	}
	if reason := validation.New(tasks, a.config.Bounds()).ValidateDrag(t, start, end).Reason; reason != "" {
		return reason
	}
	return "rejected"
}
