package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/interaction"
	"github.com/javiermolinar/gantt/internal/scheduler"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/validation"
)

// ErrNothingChanged is returned when every requested change was rejected.
var ErrNothingChanged = errors.New("no task changed")

func (a *App) moveCmd() *cobra.Command {
	var (
		days        int
		workingDays bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "move <task-id>...",
		Short: "Move tasks by a number of calendar days",
		Long: `Shift one or more tasks by the same number of calendar days, the way
dragging a selection does in the chart.

Moving a summary moves everything under it. With --working-days the
number of working days each task spans is kept, so a five-day task
moved over a weekend still covers five working days. Tasks whose new
dates break a dependency or the project bounds are skipped.`,
		Example: `  gantt move 1a2b3c4d --days=3
  gantt move 1a2b 5e6f --days=-1
  gantt move 1a2b3c4d --days=7 --working-days --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days == 0 {
				return fmt.Errorf("--days must not be zero")
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			wd, err := a.workingDays(workingDays)
			if err != nil {
				return err
			}

			ctx := context.Background()
			tasks, err := a.repo.ListTasks(ctx)
			if err != nil {
				return fmt.Errorf("fetching tasks: %w", err)
			}
			refs, err := findTasks(tasks, args)
			if err != nil {
				return err
			}

			byID := task.NewMap(tasks)
			ids := byID.WithDescendants(refs)
			ctrl := a.controller(byID, wd)

			updates := ctrl.Nudge(ids, byID, days)
			out := cmd.OutOrStdout()
			printUpdates(out, byID, updates)
			a.reportSkipped(out, byID, ids, updates, days, wd)

			if len(updates) == 0 {
				return ErrNothingChanged
			}
			return a.commit(ctx, out, updates, dryRun)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Calendar days to move by (negative moves earlier)")
	cmd.Flags().BoolVarP(&workingDays, "working-days", "w", false, "Keep working-day spans")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the new dates without saving")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

// controller builds a gesture controller validating against tasks.
func (a *App) controller(tasks task.Map, wd scheduler.Context) *interaction.Controller {
	v := validation.New(tasks, a.config.Bounds())
	return interaction.NewController(a.config.Chart.PixelsPerDay, wd, v, a.log)
}

// commit saves updates unless this is a dry run.
func (a *App) commit(ctx context.Context, out io.Writer, updates []task.Update, dryRun bool) error {
	if dryRun {
		fmt.Fprintln(out, formatMuted("dry run, nothing saved"))
		return nil
	}
	if err := a.repo.ApplyUpdates(ctx, updates); err != nil {
		return fmt.Errorf("saving changes: %w", err)
	}
	a.log.WithField("count", len(updates)).Info("updates applied")
	fmt.Fprintf(out, "Saved %s\n", formatStats(fmt.Sprintf("%d change(s)", len(updates))))
	return nil
}

// reportSkipped explains why requested tasks got no update.
func (a *App) reportSkipped(out io.Writer, tasks task.Map, ids []string, updates []task.Update, days int, wd scheduler.Context) {
	moved := make(map[string]bool, len(updates))
	for _, u := range updates {
		moved[u.ID] = true
	}
	v := validation.New(tasks, a.config.Bounds()).Moving(interaction.Proposed(updates))

	for _, id := range ids {
		t, ok := tasks.Get(id)
		if !ok || moved[id] || t.IsSummary() {
			continue
		}
		start := dateutil.AddDays(t.StartDate, days)
		end := scheduler.ComputeEndDateForDrag(start, t.StartDate, t.EndDate, days, t.Type, wd)
		reason := v.ValidateDrag(t, start, end).Reason
		if reason == "" {
			reason = "rejected"
		}
		fmt.Fprintf(out, "  %s %s: %s\n", formatError("skipped"), t.Name, reason)
	}
}

func printUpdates(out io.Writer, tasks task.Map, updates []task.Update) {
	for _, u := range updates {
		t, ok := tasks.Get(u.ID)
		if !ok {
			continue
		}
		after := t.Apply(u.Updates)
		fmt.Fprintf(out, "  %s  %s → %s  %s\n",
			fitWidth(t.Name, 24),
			dateutil.Format(after.StartDate),
			dateutil.Format(after.EndDate),
			formatMuted(fmt.Sprintf("was %s → %s", dateutil.Format(t.StartDate), dateutil.Format(t.EndDate))),
		)
	}
}
