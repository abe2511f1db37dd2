package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/validation"
)

// ErrScheduleInvalid is returned by check when violations are found.
var ErrScheduleInvalid = errors.New("schedule has violations")

func (a *App) checkCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the schedule for broken constraints",
		Long: `Report every task that starts before a predecessor ends, falls outside
the project bounds, or has malformed dates. Exits non-zero on violations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			result := validation.New(task.NewMap(tasks), a.config.Bounds()).ValidateAll()
			out := cmd.OutOrStdout()
			if result.Valid {
				fmt.Fprintf(out, "%s %d tasks checked\n", formatStats("ok"), len(tasks))
				return nil
			}

			fmt.Fprint(out, result.FormatErrors())
			return fmt.Errorf("%w: %d found", ErrScheduleInvalid, len(result.Errors))
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
