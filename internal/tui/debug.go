package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/interaction"
	"github.com/javiermolinar/gantt/internal/logging"
	"github.com/javiermolinar/gantt/internal/task"
)

// debugLog receives TUI events. It discards everything unless
// InitDebugLogger opened a file.
var debugLog = logging.Discard()

var closeDebugLog = func() error { return nil }

// InitDebugLogger points the debug log at path when enabled.
func InitDebugLogger(enabled bool, path string) error {
	if !enabled {
		debugLog = logging.Discard()
		closeDebugLog = func() error { return nil }
		return nil
	}

	l, closeFn, err := logging.OpenFile(path)
	if err != nil {
		return err
	}
	debugLog = l
	closeDebugLog = closeFn
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	_ = closeDebugLog()
	debugLog = logging.Discard()
	closeDebugLog = func() error { return nil }
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.WithField("key", msg.String()).Debug("key press")
}

// LogMouse logs a mouse event with the virtual pixel it maps to.
func LogMouse(msg tea.MouseMsg, pointerX float64, row int) {
	debugLog.WithFields(logrus.Fields{
		"action":  msg.Action,
		"button":  msg.Button,
		"x":       msg.X,
		"y":       msg.Y,
		"pointer": pointerX,
		"row":     row,
	}).Trace("mouse")
}

// LogGesture logs a gesture state change.
func LogGesture(event string, s interaction.DragState) {
	start, end := s.Dates()
	debugLog.WithFields(logrus.Fields{
		"task":    s.TaskID,
		"mode":    s.Mode.String(),
		"preview": s.HasPreview(),
		"start":   dateutil.Format(start),
		"end":     dateutil.Format(end),
	}).Debug(event)
}

// LogCommit logs the updates sent to the store.
func LogCommit(source string, updates []task.Update) {
	ids := make([]string, len(updates))
	for i, u := range updates {
		ids[i] = u.ID
	}
	debugLog.WithFields(logrus.Fields{
		"source": source,
		"count":  len(updates),
		"ids":    ids,
	}).Debug("commit")
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.WithField("context", context).WithError(err).Error("tui error")
}
