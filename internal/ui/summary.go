package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/summary"
)

func (a *App) summaryCmd() *cobra.Command {
	var (
		workingDays bool
		copyText    bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the project span and per-task days",
		Long: `Print the project span, task counts and the calendar and working days
of every task in chart order. --copy also puts the text on the clipboard.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			wd, err := a.workingDays(workingDays)
			if err != nil {
				return err
			}
			s, err := summary.Build(context.Background(), a.repo, wd)
			if err != nil {
				return err
			}

			text := s.Text()
			fmt.Fprint(cmd.OutOrStdout(), text)
			if copyText && !s.Empty() {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copying summary: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&workingDays, "working-days", "w", false, "Count working days")
	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy the summary to the clipboard")
	return cmd
}
