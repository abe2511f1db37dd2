package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/db"
	"github.com/javiermolinar/gantt/internal/logging"
	"github.com/javiermolinar/gantt/internal/scheduler"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   task.Repository
	config *config.Config
	log    *logrus.Logger
	root   *cobra.Command
	debug  bool // Enable debug logging
	ownDB  bool // repo was opened by the app and must be closed
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, log: logging.Discard()}

	a.root = &cobra.Command{
		Use:   "gantt",
		Short: "A terminal Gantt chart",
		Long: `gantt is an interactive Gantt chart for the terminal.

Drag bars with the mouse to move tasks, drag their edges to resize them,
and keep working-day spans intact across weekends and holidays.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			log, err := logging.New(os.Stderr, a.config.Log.Level)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Write a debug log of TUI events")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.workdaysCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gantt %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return err
	}
	a.log.WithField("path", path).Debug("opened database")

	a.repo = repo
	a.ownDB = true
	return nil
}

// workingDays builds the scheduling context, optionally forcing
// working-day spans on.
func (a *App) workingDays(force bool) (scheduler.Context, error) {
	wd, err := a.config.WorkingDays()
	if err != nil {
		return scheduler.Context{}, err
	}
	if force {
		wd.Enabled = true
	}
	return wd, nil
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database when the app opened it.
func (a *App) Close() error {
	if a.ownDB && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
