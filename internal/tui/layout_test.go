package tui

import (
	"testing"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/task"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          layout
	}{
		{
			name: "wide", width: 100, height: 20,
			want: layout{width: 100, height: 20, labelWidth: 25, chartLeft: 26, chartWidth: 74, rowsTop: 2, rowsVisible: 16},
		},
		{
			name: "narrow uses minimum label", width: 40, height: 10,
			want: layout{width: 40, height: 10, labelWidth: 16, chartLeft: 17, chartWidth: 23, rowsTop: 2, rowsVisible: 6},
		},
		{
			name: "very wide caps label", width: 200, height: 50,
			want: layout{width: 200, height: 50, labelWidth: 32, chartLeft: 33, chartWidth: 167, rowsTop: 2, rowsVisible: 46},
		},
		{
			name: "tiny", width: 10, height: 3,
			want: layout{width: 10, height: 3, labelWidth: 10, chartLeft: 11, chartWidth: 0, rowsTop: 2, rowsVisible: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := computeLayout(tc.width, tc.height); got != tc.want {
				t.Errorf("computeLayout(%d, %d) = %+v, want %+v", tc.width, tc.height, got, tc.want)
			}
		})
	}
}

func TestPixelMapping(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	if got := m.pointerX(26); got != 4 {
		t.Errorf("pointerX(26) = %v, want 4", got)
	}
	if got := m.pointerX(30); got != 36 {
		t.Errorf("pointerX(30) = %v, want 36", got)
	}

	bar := m.barGeometry(date(2025, 1, 6), date(2025, 1, 10))
	if bar.X != 32 || bar.Width != 64 {
		t.Errorf("barGeometry = %+v, want {32 64}", bar)
	}

	launch, _ := m.byID.Get("c")
	if hit := m.hitGeometry(launch); hit.X != 256 || hit.Width != 16 {
		t.Errorf("milestone hitGeometry = %+v, want {256 16}", hit)
	}

	tests := []struct {
		cell int
		want int // day of January
	}{
		{0, 4},
		{1, 4},
		{2, 5},
		{8, 8},
		{36, 22},
	}
	for _, tc := range tests {
		if got := m.cellDate(tc.cell); !got.Equal(date(2025, 1, tc.want)) {
			t.Errorf("cellDate(%d) = %v, want Jan %d", tc.cell, got, tc.want)
		}
	}

	if got := m.visibleDays(); got != 37 {
		t.Errorf("visibleDays = %d, want 37", got)
	}
}

func TestRowAt(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	tests := []struct {
		y      int
		want   int
		wantOK bool
	}{
		{0, 0, false},
		{1, 0, false},
		{2, 0, true},
		{4, 2, true},
		{5, 0, false},
		{19, 0, false},
	}
	for _, tc := range tests {
		got, ok := m.rowAt(tc.y)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Errorf("rowAt(%d) = %d, %v; want %d, %v", tc.y, got, ok, tc.want, tc.wantOK)
		}
	}

	if m.inChart(25) || !m.inChart(26) || !m.inChart(99) || m.inChart(100) {
		t.Error("inChart boundaries wrong")
	}
}

func TestCellWidth_Scales(t *testing.T) {
	cfg := config.Default()
	cfg.Chart.PixelsPerDay = 24
	cfg.Chart.CellWidthPx = 24

	one := newTask("x", "One", task.TypeTask, date(2025, 1, 6), date(2025, 1, 9))
	m := newTestModelWithConfig(t, cfg, nil, one)

	// One cell per day: the three-day bar covers three cells from day 2.
	bar := m.barGeometry(one.StartDate, one.EndDate)
	covered := 0
	for c := 0; c < m.layout().chartWidth; c++ {
		if m.cellCovers(c, bar.X, bar.Width) {
			covered++
			if c < 2 || c > 4 {
				t.Errorf("cell %d covered", c)
			}
		}
	}
	if covered != 3 {
		t.Errorf("covered %d cells, want 3", covered)
	}
}
