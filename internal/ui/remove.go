package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Long: `Remove a task and its dependency links.

Children of a removed summary become top-level tasks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
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

			if err := a.repo.DeleteTask(ctx, t.ID); err != nil {
				return fmt.Errorf("removing task: %w", err)
			}
			a.log.WithField("task_id", t.ID).Info("task removed")

			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s: %s\n", shortID(t.ID), t.Name)
			return nil
		},
	}
}
