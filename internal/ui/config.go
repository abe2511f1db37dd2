package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  gantt config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Schedule.Workdays = promptSlice(reader, "Workdays (comma-separated)", cfg.Schedule.Workdays)
	cfg.Schedule.WorkingDays = promptBool(reader, "Keep working-day spans on move", cfg.Schedule.WorkingDays)
	cfg.Schedule.HolidayRegion = promptValue(reader, "Holiday region (empty for none)", cfg.Schedule.HolidayRegion)
	cfg.Chart.PixelsPerDay = promptFloat(reader, "Pixels per day", cfg.Chart.PixelsPerDay)
	cfg.Chart.CellWidthPx = promptFloat(reader, "Pixels per terminal cell", cfg.Chart.CellWidthPx)
	cfg.Project.Start = promptValue(reader, "Project start (YYYY-MM-DD, empty for open)", cfg.Project.Start)
	cfg.Project.End = promptValue(reader, "Project end (YYYY-MM-DD, empty for open)", cfg.Project.End)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, "Log level", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[schedule]")
	fmt.Printf("  workdays         = %s\n", strings.Join(cfg.Schedule.Workdays, ", "))
	fmt.Printf("  working_days     = %t\n", cfg.Schedule.WorkingDays)
	if cfg.Schedule.HolidayRegion != "" {
		fmt.Printf("  holiday_region   = %s\n", cfg.Schedule.HolidayRegion)
	}
	if len(cfg.Holidays) > 0 {
		fmt.Println("\n[holidays]")
		for region, dates := range cfg.Holidays {
			fmt.Printf("  %-16s = %d dates\n", region, len(dates))
		}
	}
	fmt.Println("\n[chart]")
	fmt.Printf("  pixels_per_day   = %g\n", cfg.Chart.PixelsPerDay)
	fmt.Printf("  cell_width_px    = %g\n", cfg.Chart.CellWidthPx)
	if cfg.Project.Start != "" || cfg.Project.End != "" {
		fmt.Println("\n[project]")
		fmt.Printf("  start            = %s\n", cfg.Project.Start)
		fmt.Printf("  end              = %s\n", cfg.Project.End)
	}
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme            = %s\n", cfg.UI.Theme)
	fmt.Println("\n[log]")
	fmt.Printf("  level            = %s\n", cfg.Log.Level)
	fmt.Printf("  file             = %s\n", cfg.Log.File)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(reader *bufio.Reader, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Printf("  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptBool(reader *bufio.Reader, label string, current bool) bool {
	value := strings.ToLower(promptValue(reader, label+" (y/n)", strconv.FormatBool(current)))
	switch value {
	case "y", "yes", "true":
		return true
	case "n", "no", "false":
		return false
	default:
		return current
	}
}

func promptFloat(reader *bufio.Reader, label string, current float64) float64 {
	for {
		value := promptValue(reader, label, strconv.FormatFloat(current, 'g', -1, 64))
		f, err := strconv.ParseFloat(value, 64)
		if err == nil && f > 0 {
			return f
		}
		fmt.Printf("  Invalid number %q, must be positive\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
