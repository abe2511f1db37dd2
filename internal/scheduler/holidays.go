package scheduler

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rickar/cal/v2"

	"github.com/javiermolinar/gantt/internal/dateutil"
)

// Holidays is an in-memory HolidayProvider keyed by region. Each region is
// a calendar of one-off dates.
type Holidays struct {
	regions map[string]*cal.Calendar
}

// NewHolidays creates an empty holiday set.
func NewHolidays() *Holidays {
	return &Holidays{regions: make(map[string]*cal.Calendar)}
}

// LoadHolidays builds a holiday set from region -> ISO date lists.
func LoadHolidays(byRegion map[string][]string) (*Holidays, error) {
	h := NewHolidays()
	for region, dates := range byRegion {
		for _, s := range dates {
			d, err := time.Parse(dateutil.Layout, strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("holiday %q in region %q: %w", s, region, dateutil.ErrInvalidDateFormat)
			}
			h.Add(region, d)
		}
	}
	return h, nil
}

// Add registers dates as holidays in region. Dates already registered are
// ignored.
func (h *Holidays) Add(region string, dates ...time.Time) {
	region = normalizeRegion(region)
	c, ok := h.regions[region]
	if !ok {
		c = &cal.Calendar{Name: region}
		h.regions[region] = c
	}
	for _, d := range dates {
		d = dateutil.TruncateToDay(d)
		if _, observed, _ := c.IsHoliday(d); observed {
			continue
		}
		c.AddHoliday(&cal.Holiday{
			Name:      dateutil.Format(d),
			Type:      cal.ObservancePublic,
			StartYear: d.Year(),
			EndYear:   d.Year(),
			Month:     d.Month(),
			Day:       d.Day(),
			Func:      cal.CalcDayOfMonth,
		})
	}
}

// IsHoliday implements HolidayProvider.
func (h *Holidays) IsHoliday(date time.Time, region string) bool {
	if h == nil {
		return false
	}
	c, ok := h.regions[normalizeRegion(region)]
	if !ok {
		return false
	}
	_, observed, _ := c.IsHoliday(dateutil.TruncateToDay(date))
	return observed
}

// Regions returns the registered region identifiers, sorted.
func (h *Holidays) Regions() []string {
	regions := make([]string, 0, len(h.regions))
	for r := range h.regions {
		regions = append(regions, r)
	}
	slices.Sort(regions)
	return regions
}

// Dates returns the holidays of a region in ascending order.
func (h *Holidays) Dates(region string) []time.Time {
	c, ok := h.regions[normalizeRegion(region)]
	if !ok {
		return nil
	}
	dates := make([]time.Time, 0, len(c.Holidays))
	for _, hol := range c.Holidays {
		dates = append(dates, time.Date(hol.StartYear, hol.Month, hol.Day, 0, 0, 0, 0, time.UTC))
	}
	slices.SortFunc(dates, time.Time.Compare)
	return dates
}

func normalizeRegion(region string) string {
	return strings.ToLower(strings.TrimSpace(region))
}
