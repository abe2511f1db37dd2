// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/task"
)

// storeTimeout bounds every repository call made from the UI.
const storeTimeout = 5 * time.Second

// TasksLoadedMsg is sent when the task list is loaded.
type TasksLoadedMsg struct {
	Tasks []*task.Task
}

// UpdatesAppliedMsg is sent when a batch of updates is committed.
type UpdatesAppliedMsg struct {
	Count int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadTasks loads every task.
func LoadTasks(repo task.Repository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		tasks, err := repo.ListTasks(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tasks: %w", err)}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

// ApplyUpdates commits a batch of updates. The chart reloads on success.
func ApplyUpdates(repo task.Repository, updates []task.Update) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := repo.ApplyUpdates(ctx, updates); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving changes: %w", err)}
		}
		return UpdatesAppliedMsg{Count: len(updates)}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
