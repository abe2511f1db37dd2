// Package scheduler provides working-day aware date arithmetic for tasks.
package scheduler

import (
	"time"

	"github.com/rickar/cal/v2"

	"github.com/javiermolinar/gantt/internal/dateutil"
)

// HolidayProvider reports whether a date is a holiday in a region.
type HolidayProvider interface {
	IsHoliday(date time.Time, region string) bool
}

// Calendar knows which weekdays are worked and which dates are holidays.
type Calendar struct {
	week     *cal.BusinessCalendar // weekday pattern, no holidays
	workdays int
	holidays HolidayProvider
}

// New creates a Calendar from weekday names (e.g. "monday").
// Unknown names are ignored; holidays may be nil.
func New(workdays []string, holidays HolidayProvider) *Calendar {
	var worked [7]bool
	for _, name := range workdays {
		if d, ok := dateutil.ParseWeekday(name); ok {
			worked[d] = true
		}
	}

	week := cal.NewBusinessCalendar()
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		week.SetWorkday(d, worked[d])
		if worked[d] {
			n++
		}
	}
	return &Calendar{
		week:     week,
		workdays: n,
		holidays: holidays,
	}
}

// BusinessWeek returns a Monday-Friday calendar without holidays.
func BusinessWeek() *Calendar {
	return New([]string{"monday", "tuesday", "wednesday", "thursday", "friday"}, nil)
}

// IsWorkday returns true if the date falls on a configured workday,
// ignoring holidays.
func (c *Calendar) IsWorkday(t time.Time) bool {
	return c.week.IsWorkday(t)
}

// IsHoliday returns true if the date is a holiday in region.
func (c *Calendar) IsHoliday(t time.Time, region string) bool {
	if c.holidays == nil || region == "" {
		return false
	}
	return c.holidays.IsHoliday(t, region)
}

// IsWorkingDay returns true if the date is a workday and not a holiday in region.
func (c *Calendar) IsWorkingDay(t time.Time, region string) bool {
	return c.IsWorkday(t) && !c.IsHoliday(t, region)
}

// CalculateWorkingDays counts the working days d with start < d <= end.
// Returns 0 when end is not after start.
func (c *Calendar) CalculateWorkingDays(start, end time.Time, region string) int {
	start = dateutil.TruncateToDay(start)
	end = dateutil.TruncateToDay(end)
	if !end.After(start) {
		return 0
	}
	// The range is inclusive on both ends; the start day never counts.
	return c.business(region).WorkdaysInRange(start.AddDate(0, 0, 1), end)
}

// AddWorkingDays returns the date reached by stepping over count working
// days after date. Negative counts step backwards; zero returns date.
// A calendar without any working day falls back to calendar days.
func (c *Calendar) AddWorkingDays(date time.Time, count int, region string) time.Time {
	date = dateutil.TruncateToDay(date)
	if count == 0 {
		return date
	}
	if c.workdays == 0 {
		return date.AddDate(0, 0, count)
	}
	return c.business(region).WorkdaysFrom(date, count)
}

// NextWorkingDay returns the first working day on or after from.
// A calendar without any working day returns from.
func (c *Calendar) NextWorkingDay(from time.Time, region string) time.Time {
	d := dateutil.TruncateToDay(from)
	if c.workdays == 0 {
		return d
	}
	for !c.IsWorkingDay(d, region) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// business returns a business calendar whose workdays are the working days
// of region. Holidays are finite, so a calendar with at least one workday
// always reaches the next working day.
func (c *Calendar) business(region string) *cal.BusinessCalendar {
	b := cal.NewBusinessCalendar()
	b.WorkdayFunc = func(d time.Time) bool {
		return c.IsWorkingDay(d, region)
	}
	return b
}
