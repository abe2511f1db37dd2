// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/scheduler"
	"github.com/javiermolinar/gantt/internal/validation"
)

var validate = validator.New()

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig      `toml:"schedule"`
	Holidays map[string][]string `toml:"holidays" validate:"dive,dive,datetime=2006-01-02"` // region -> dates
	Chart    ChartConfig         `toml:"chart"`
	Project  ProjectConfig       `toml:"project"`
	Storage  StorageConfig       `toml:"storage"`
	UI       UIConfig            `toml:"ui"`
	Log      LogConfig           `toml:"log"`
}

// ScheduleConfig holds working-day scheduling settings.
type ScheduleConfig struct {
	Workdays      []string `toml:"workdays" validate:"min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	WorkingDays   bool     `toml:"working_days"`   // preserve working-day spans on drag
	HolidayRegion string   `toml:"holiday_region"` // key into [holidays], empty for none
}

// ChartConfig holds timeline geometry.
type ChartConfig struct {
	PixelsPerDay float64 `toml:"pixels_per_day" validate:"gt=0"`
	CellWidthPx  float64 `toml:"cell_width_px" validate:"gt=0"` // virtual pixels per terminal cell
}

// ProjectConfig holds optional project bounds.
type ProjectConfig struct {
	Start string `toml:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `toml:"end" validate:"omitempty,datetime=2006-01-02"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path" validate:"required"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme" validate:"oneof=mocha macchiato frappe latte"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=trace debug info warn error"`
	File  string `toml:"file"` // TUI debug log, used with --debug
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Workdays:    []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			WorkingDays: false,
		},
		Holidays: map[string][]string{},
		Chart: ChartConfig{
			PixelsPerDay: 16,
			CellWidthPx:  8,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "warn",
			File:  defaultLogPath(),
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gantt.db"
	}
	return filepath.Join(home, ".local", "share", "gantt", "gantt.db")
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gantt-debug.log"
	}
	return filepath.Join(home, ".local", "state", "gantt", "debug.log")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "gantt", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GANTT_WORKDAYS"); v != "" {
		cfg.Schedule.Workdays = strings.Split(v, ",")
	}
	if v := os.Getenv("GANTT_WORKING_DAYS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GANTT_WORKING_DAYS: %w", err)
		}
		cfg.Schedule.WorkingDays = b
	}
	if v := os.Getenv("GANTT_HOLIDAY_REGION"); v != "" {
		cfg.Schedule.HolidayRegion = v
	}

	if v := os.Getenv("GANTT_PIXELS_PER_DAY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GANTT_PIXELS_PER_DAY: %w", err)
		}
		cfg.Chart.PixelsPerDay = f
	}
	if v := os.Getenv("GANTT_CELL_WIDTH_PX"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GANTT_CELL_WIDTH_PX: %w", err)
		}
		cfg.Chart.CellWidthPx = f
	}

	if v := os.Getenv("GANTT_PROJECT_START"); v != "" {
		cfg.Project.Start = v
	}
	if v := os.Getenv("GANTT_PROJECT_END"); v != "" {
		cfg.Project.End = v
	}

	if v := os.Getenv("GANTT_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("GANTT_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("GANTT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GANTT_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	return nil
}

// normalize lowercases names that are matched case-insensitively.
func (c *Config) normalize() {
	for i, d := range c.Schedule.Workdays {
		c.Schedule.Workdays[i] = strings.ToLower(strings.TrimSpace(d))
	}
	c.Schedule.HolidayRegion = strings.ToLower(strings.TrimSpace(c.Schedule.HolidayRegion))
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Log.Level = strings.ToLower(c.Log.Level)

	if len(c.Holidays) > 0 {
		holidays := make(map[string][]string, len(c.Holidays))
		for region, dates := range c.Holidays {
			key := strings.ToLower(strings.TrimSpace(region))
			holidays[key] = append(holidays[key], dates...)
		}
		c.Holidays = holidays
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
// Field rules come from the struct tags; cross-field rules follow.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}

	if c.Project.Start != "" && c.Project.End != "" && c.Project.End < c.Project.Start {
		return errors.New("project end must not be before project start")
	}

	if c.Schedule.HolidayRegion != "" {
		if _, ok := c.Holidays[c.Schedule.HolidayRegion]; !ok {
			return fmt.Errorf("holiday_region %q has no entry in [holidays]", c.Schedule.HolidayRegion)
		}
	}

	return nil
}

// fieldError turns a validator error into a message naming the TOML key.
func fieldError(e validator.FieldError) error {
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	field = strings.ToLower(field)

	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s must be set", field)
	case "min":
		return fmt.Errorf("%s needs at least %s entries", field, e.Param())
	case "gt":
		return fmt.Errorf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", field, e.Param(), e.Value())
	case "datetime":
		return fmt.Errorf("%s must be a YYYY-MM-DD date, got %q", field, e.Value())
	default:
		return fmt.Errorf("%s is invalid (%s)", field, e.Tag())
	}
}

// IsWorkday returns true if the given weekday name is a configured workday.
func (c *Config) IsWorkday(weekday string) bool {
	weekday = strings.ToLower(weekday)
	for _, d := range c.Schedule.Workdays {
		if strings.ToLower(d) == weekday {
			return true
		}
	}
	return false
}

// Calendar builds the working-day calendar from the schedule and holidays.
func (c *Config) Calendar() (*scheduler.Calendar, error) {
	holidays, err := scheduler.LoadHolidays(c.Holidays)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}
	return scheduler.New(c.Schedule.Workdays, holidays), nil
}

// WorkingDays builds the scheduling context used by drags.
func (c *Config) WorkingDays() (scheduler.Context, error) {
	cal, err := c.Calendar()
	if err != nil {
		return scheduler.Context{}, err
	}
	return scheduler.Context{
		Enabled:  c.Schedule.WorkingDays,
		Calendar: cal,
		Region:   c.Schedule.HolidayRegion,
	}, nil
}

// Bounds returns the project bounds used by the drag validator.
func (c *Config) Bounds() validation.Bounds {
	var b validation.Bounds
	if c.Project.Start != "" {
		if t, err := dateutil.ParseDate(c.Project.Start); err == nil {
			b.Start = t
		}
	}
	if c.Project.End != "" {
		if t, err := dateutil.ParseDate(c.Project.End); err == nil {
			b.End = t
		}
	}
	return b
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
