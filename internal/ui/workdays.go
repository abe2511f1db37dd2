package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/scheduler"
)

func (a *App) workdaysCmd() *cobra.Command {
	var (
		add          int
		listHolidays bool
	)

	cmd := &cobra.Command{
		Use:   "workdays <start> [end]",
		Short: "Count or add working days",
		Long: `Count the working days after start up to and including end, or with
--add, print the date reached by stepping over that many working days.
--holidays lists the configured holidays of every region.

Working days follow [schedule] workdays and the holidays of the
configured holiday region.`,
		Example: `  gantt workdays 2025-01-06 2025-01-13
  gantt workdays 2025-01-06 --add=5
  gantt workdays --holidays`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listHolidays {
				return a.printHolidays(cmd)
			}
			if len(args) == 0 {
				return fmt.Errorf("give a start date")
			}

			cal, err := a.config.Calendar()
			if err != nil {
				return err
			}
			region := a.config.Schedule.HolidayRegion

			start, err := parseDateArg(args[0])
			if err != nil {
				return fmt.Errorf("start date: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				if add == 0 {
					return fmt.Errorf("give an end date or --add")
				}
				fmt.Fprintln(out, dateutil.Format(cal.AddWorkingDays(start, add, region)))
				return nil
			}

			end, err := parseDateArg(args[1])
			if err != nil {
				return fmt.Errorf("end date: %w", err)
			}
			fmt.Fprintf(out, "%d working days (%s)\n",
				cal.CalculateWorkingDays(start, end, region),
				FormatDays(dateutil.CalculateDuration(start, end)))
			return nil
		},
	}

	cmd.Flags().IntVar(&add, "add", 0, "Working days to add to start (negative steps back)")
	cmd.Flags().BoolVar(&listHolidays, "holidays", false, "List configured holidays by region")
	return cmd
}

// printHolidays lists every holiday region with its dates. The configured
// region is marked active.
func (a *App) printHolidays(cmd *cobra.Command) error {
	holidays, err := scheduler.LoadHolidays(a.config.Holidays)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	regions := holidays.Regions()
	if len(regions) == 0 {
		fmt.Fprintln(out, formatMuted("No holidays configured. Add a [holidays] table to the config."))
		return nil
	}

	active := strings.ToLower(strings.TrimSpace(a.config.Schedule.HolidayRegion))
	for _, region := range regions {
		dates := holidays.Dates(region)
		header := fmt.Sprintf("%s (%d)", region, len(dates))
		if region == active {
			header += " active"
		}
		fmt.Fprintln(out, formatHeader(header))
		for _, d := range dates {
			fmt.Fprintf(out, "  %s  %s\n", dateutil.Format(d), formatMuted(d.Weekday().String()))
		}
	}
	return nil
}
