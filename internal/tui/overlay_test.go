package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestOverlayRender_Inactive(t *testing.T) {
	o := NewOverlayModel()
	base := "line one\nline two"

	if got := o.Render(base, 20, 2, "hello"); got != base {
		t.Errorf("inactive overlay changed base: %q", got)
	}
}

func TestOverlayRender_Active(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	o := NewOverlayModel()
	o.SetBackground("#313244")
	o.Open()

	base := strings.Repeat(strings.Repeat(".", 40)+"\n", 9) + strings.Repeat(".", 40)
	out := o.Render(base, 40, 10, "hello\nworld")
	lines := strings.Split(ansi.Strip(out), "\n")

	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d is %d cells wide, want 40", i, w)
		}
	}

	// 24x4 box centered at column 8, row 3.
	if !strings.HasPrefix(lines[0], "........") || strings.Contains(lines[3][8:32], ".") {
		t.Errorf("box not opaque at row 3: %q", lines[3])
	}
	if !strings.Contains(lines[4], "hello") || !strings.Contains(lines[5], "world") {
		t.Errorf("content missing: %q / %q", lines[4], lines[5])
	}
	if !strings.HasSuffix(lines[4], "........") {
		t.Errorf("base not kept right of the box: %q", lines[4])
	}
}

func TestOverlayRender_PadsShortBase(t *testing.T) {
	o := NewOverlayModel()
	o.Open()

	out := o.Render("x", 30, 6, "hi")
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	if !strings.HasPrefix(lines[0], "x") {
		t.Errorf("base lost: %q", lines[0])
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 30 {
			t.Errorf("line %d is %d cells wide, want 30", i, w)
		}
	}
}

func TestOverlayRender_ClipsToScreen(t *testing.T) {
	o := NewOverlayModel()
	o.Open()

	content := strings.Repeat("wide ", 20) + "\n" + strings.Repeat("row\n", 10)
	out := o.Render("", 20, 5, content)
	for i, line := range strings.Split(ansi.Strip(out), "\n") {
		if w := lipgloss.Width(line); w > 20 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}
