package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Ordinary tasks: cyan, like their bars
	colorTask = color.New(color.FgCyan)

	// Milestones: bold yellow
	colorMilestone = color.New(color.FgYellow, color.Bold)

	// Summaries: bold magenta
	colorSummary = color.New(color.FgMagenta, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success and totals
	colorStats = color.New(color.FgGreen)

	// Violations and rejected moves
	colorError = color.New(color.FgRed)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

func formatError(s string) string {
	return colorError.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
