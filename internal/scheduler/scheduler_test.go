package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/rickar/cal/v2"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/task"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkday(t *testing.T) {
	c := New([]string{"Monday", "tuesday", "bogus"}, nil)

	if !c.IsWorkday(day(2025, 1, 6)) { // Monday
		t.Error("expected Monday to be a workday")
	}
	if !c.IsWorkday(day(2025, 1, 7)) { // Tuesday
		t.Error("expected Tuesday to be a workday")
	}
	if c.IsWorkday(day(2025, 1, 8)) { // Wednesday
		t.Error("expected Wednesday not to be a workday")
	}
}

func TestCalculateWorkingDays(t *testing.T) {
	holidays := NewHolidays()
	holidays.Add("ES", day(2025, 1, 6))

	c := New([]string{"monday", "tuesday", "wednesday", "thursday", "friday"}, holidays)

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		region string
		want   int
	}{
		{name: "same day", start: day(2025, 1, 6), end: day(2025, 1, 6), want: 0},
		{name: "end before start", start: day(2025, 1, 10), end: day(2025, 1, 6), want: 0},
		{name: "one week", start: day(2025, 1, 6), end: day(2025, 1, 13), want: 5},
		{name: "within week", start: day(2025, 1, 6), end: day(2025, 1, 10), want: 4},
		{name: "weekend only", start: day(2025, 1, 3), end: day(2025, 1, 5), want: 0},
		{name: "holiday excluded", start: day(2025, 1, 3), end: day(2025, 1, 10), region: "es", want: 4},
		{name: "holiday in other region", start: day(2025, 1, 3), end: day(2025, 1, 10), region: "us", want: 5},
		{name: "no region ignores holidays", start: day(2025, 1, 3), end: day(2025, 1, 10), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CalculateWorkingDays(tt.start, tt.end, tt.region); got != tt.want {
				t.Errorf("CalculateWorkingDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddWorkingDays(t *testing.T) {
	holidays := NewHolidays()
	holidays.Add("us", day(2025, 1, 15))

	c := New([]string{"monday", "tuesday", "wednesday", "thursday", "friday"}, holidays)

	tests := []struct {
		name   string
		date   time.Time
		count  int
		region string
		want   time.Time
	}{
		{name: "zero", date: day(2025, 1, 9), count: 0, want: day(2025, 1, 9)},
		{name: "across weekend", date: day(2025, 1, 9), count: 5, want: day(2025, 1, 16)},
		{name: "across weekend and holiday", date: day(2025, 1, 9), count: 5, region: "us", want: day(2025, 1, 17)},
		{name: "from saturday", date: day(2025, 1, 4), count: 1, want: day(2025, 1, 6)},
		{name: "backwards over weekend", date: day(2025, 1, 13), count: -1, want: day(2025, 1, 10)},
		{name: "backwards over holiday", date: day(2025, 1, 16), count: -1, region: "us", want: day(2025, 1, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.AddWorkingDays(tt.date, tt.count, tt.region); !got.Equal(tt.want) {
				t.Errorf("AddWorkingDays() = %s, want %s", dateutil.Format(got), dateutil.Format(tt.want))
			}
		})
	}
}

func TestAddWorkingDays_NoWorkdays(t *testing.T) {
	c := New(nil, nil)
	if got := c.AddWorkingDays(day(2025, 1, 1), 3, ""); !got.Equal(day(2025, 1, 4)) {
		t.Errorf("expected calendar fallback, got %s", dateutil.Format(got))
	}
}

func TestNextWorkingDay_NoWorkdays(t *testing.T) {
	c := New(nil, nil)
	if got := c.NextWorkingDay(day(2025, 1, 4), ""); !got.Equal(day(2025, 1, 4)) {
		t.Errorf("expected from to be returned, got %s", dateutil.Format(got))
	}
}

// The business calendar counts both ends of a range; a task's working days
// exclude its start day.
func TestCalculateWorkingDays_ExcludesStart(t *testing.T) {
	business := cal.NewBusinessCalendar()
	if got := business.WorkdaysInRange(day(2025, 1, 6), day(2025, 1, 13)); got != 6 {
		t.Fatalf("WorkdaysInRange() = %d, want 6", got)
	}
	if got := BusinessWeek().CalculateWorkingDays(day(2025, 1, 6), day(2025, 1, 13), ""); got != 5 {
		t.Errorf("CalculateWorkingDays() = %d, want 5", got)
	}
}

func TestWorkingDaysRoundTrip(t *testing.T) {
	c := BusinessWeek()

	for offset := range 14 {
		start := day(2025, 1, 1).AddDate(0, 0, offset)
		for w := 0; w <= 12; w++ {
			end := c.AddWorkingDays(start, w, "")
			if got := c.CalculateWorkingDays(start, end, ""); got != w {
				t.Fatalf("start %s, w=%d: round trip gave %d", dateutil.Format(start), w, got)
			}
		}
	}
}

func TestNextWorkingDay(t *testing.T) {
	holidays := NewHolidays()
	holidays.Add("us", day(2025, 1, 6))
	c := New([]string{"monday", "tuesday", "wednesday", "thursday", "friday"}, holidays)

	if got := c.NextWorkingDay(day(2025, 1, 4), ""); !got.Equal(day(2025, 1, 6)) {
		t.Errorf("got %s, want 2025-01-06", dateutil.Format(got))
	}
	if got := c.NextWorkingDay(day(2025, 1, 4), "us"); !got.Equal(day(2025, 1, 7)) {
		t.Errorf("got %s, want 2025-01-07", dateutil.Format(got))
	}
	if got := c.NextWorkingDay(day(2025, 1, 8), ""); !got.Equal(day(2025, 1, 8)) {
		t.Errorf("got %s, want 2025-01-08", dateutil.Format(got))
	}
}

func TestComputeEndDateForDrag(t *testing.T) {
	holidays := NewHolidays()
	holidays.Add("us", day(2025, 1, 15))
	calendar := New([]string{"monday", "tuesday", "wednesday", "thursday", "friday"}, holidays)

	origStart := day(2025, 1, 6) // Monday
	origEnd := day(2025, 1, 13)  // five working days later

	tests := []struct {
		name     string
		newStart time.Time
		delta    int
		typ      task.Type
		origEnd  time.Time
		ctx      Context
		want     time.Time
	}{
		{
			name:     "calendar mode shifts end",
			newStart: day(2025, 1, 9), delta: 3, typ: task.TypeTask, origEnd: origEnd,
			ctx:  Context{},
			want: day(2025, 1, 16),
		},
		{
			name:     "enabled without calendar is calendar mode",
			newStart: day(2025, 1, 8), delta: 2, typ: task.TypeTask, origEnd: origEnd,
			ctx:  Context{Enabled: true},
			want: day(2025, 1, 15),
		},
		{
			name:     "working days skip weekend",
			newStart: day(2025, 1, 9), delta: 3, typ: task.TypeTask, origEnd: origEnd,
			ctx:  Context{Enabled: true, Calendar: calendar},
			want: day(2025, 1, 16),
		},
		{
			name:     "working days preserve span over a weekend boundary",
			newStart: day(2025, 1, 8), delta: 2, typ: task.TypeTask, origEnd: day(2025, 1, 10),
			ctx:  Context{Enabled: true, Calendar: calendar},
			want: day(2025, 1, 14),
		},
		{
			name:     "working days skip holiday",
			newStart: day(2025, 1, 9), delta: 3, typ: task.TypeTask, origEnd: origEnd,
			ctx:  Context{Enabled: true, Calendar: calendar, Region: "us"},
			want: day(2025, 1, 17),
		},
		{
			name:     "region without holidays is a plain business calendar",
			newStart: day(2025, 1, 9), delta: 3, typ: task.TypeTask, origEnd: origEnd,
			ctx:  Context{Enabled: true, Calendar: calendar, Region: "fr"},
			want: day(2025, 1, 16),
		},
		{
			name:     "milestone always shifts by calendar days",
			newStart: day(2025, 1, 11), delta: 5, typ: task.TypeMilestone, origEnd: origStart,
			ctx:  Context{Enabled: true, Calendar: calendar},
			want: day(2025, 1, 11),
		},
		{
			name:     "zero working day span ends on new start",
			newStart: day(2025, 1, 11), delta: 5, typ: task.TypeTask, origEnd: origStart,
			ctx:  Context{Enabled: true, Calendar: calendar},
			want: day(2025, 1, 11),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEndDateForDrag(tt.newStart, origStart, tt.origEnd, tt.delta, tt.typ, tt.ctx)
			if !got.Equal(tt.want) {
				t.Errorf("ComputeEndDateForDrag() = %s, want %s", dateutil.Format(got), dateutil.Format(tt.want))
			}
		})
	}
}

func TestLoadHolidays(t *testing.T) {
	h, err := LoadHolidays(map[string][]string{
		"US": {"2025-01-01", " 2025-07-04"},
		"es": {"2025-01-06"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !h.IsHoliday(day(2025, 7, 4), "us") {
		t.Error("expected region lookup to be case-insensitive")
	}
	if h.IsHoliday(day(2025, 7, 4), "es") {
		t.Error("holiday leaked into another region")
	}
	if got := h.Regions(); len(got) != 2 || got[0] != "es" || got[1] != "us" {
		t.Errorf("Regions() = %v", got)
	}
	if got := h.Dates("us"); len(got) != 2 || !got[0].Equal(day(2025, 1, 1)) {
		t.Errorf("Dates() = %v", got)
	}

	h.Add("us", day(2025, 1, 1), time.Date(2025, 12, 25, 15, 0, 0, 0, time.UTC))
	if got := h.Dates("us"); len(got) != 3 || !got[2].Equal(day(2025, 12, 25)) {
		t.Errorf("Dates() after Add = %v, want 3 dates ending 2025-12-25", got)
	}
	if h.IsHoliday(day(2026, 1, 1), "us") {
		t.Error("a dated holiday must not repeat the next year")
	}
	if got := h.Dates("fr"); len(got) != 0 {
		t.Errorf("Dates() of unknown region = %v", got)
	}

	_, err = LoadHolidays(map[string][]string{"us": {"July 4th"}})
	if !errors.Is(err, dateutil.ErrInvalidDateFormat) {
		t.Errorf("got %v, want %v", err, dateutil.ErrInvalidDateFormat)
	}
}
