// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/task"
)

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const selectTask = `
	SELECT id, name, type, start_date, end_date, duration, parent_id, created_at
	FROM tasks
`

// CreateTask adds a new task to the repository.
// The parent, when set, must be an existing summary; dependencies must
// reference existing tasks. The parent chain is re-spanned.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.IsMilestone() {
		t.Duration = 0
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if t.ParentID != "" {
		parent, err := getTask(ctx, tx, t.ParentID)
		if errors.Is(err, task.ErrTaskNotFound) {
			return fmt.Errorf("%w: %s", task.ErrParentNotFound, t.ParentID)
		}
		if err != nil {
			return err
		}
		if !parent.IsSummary() {
			return fmt.Errorf("%w: %q", task.ErrParentNotSummary, parent.Name)
		}
	}

	query := `
		INSERT INTO tasks (id, name, type, start_date, end_date, duration, parent_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		t.ID,
		t.Name,
		string(t.Type),
		dateutil.Format(t.StartDate),
		dateutil.Format(t.EndDate),
		t.Duration,
		nullString(t.ParentID),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	if err := insertDependencies(ctx, tx, t.ID, t.Dependencies); err != nil {
		return err
	}

	if t.ParentID != "" {
		if err := respanChain(ctx, tx, t.ParentID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID.
// Returns task.ErrTaskNotFound if no task has the ID.
func (s *SQLite) GetTask(ctx context.Context, id string) (*task.Task, error) {
	t, err := getTask(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	deps, err := loadDependencies(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	t.Dependencies = deps[id]

	return t, nil
}

// ListTasks returns all tasks ordered by start date, end date and name.
func (s *SQLite) ListTasks(ctx context.Context) ([]*task.Task, error) {
	query := selectTask + ` ORDER BY start_date, end_date, name, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	deps, err := loadDependencies(ctx, s.db, "")
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		t.Dependencies = deps[t.ID]
	}

	return tasks, nil
}

// DeleteTask removes a task and every dependency link touching it.
// Children of a deleted summary become top-level tasks.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM task_dependencies WHERE task_id = ? OR depends_on = ?`, id, id); err != nil {
		return fmt.Errorf("deleting dependencies: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE tasks SET parent_id = NULL WHERE parent_id = ?`, id); err != nil {
		return fmt.Errorf("detaching children: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	if t.ParentID != "" {
		if err := respanChain(ctx, tx, t.ParentID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ApplyUpdates applies a batch of partial updates atomically.
// Every updated task must still satisfy its shape invariants, otherwise the
// whole batch is rolled back. Summaries above the updated tasks are
// re-spanned from their children in the same transaction.
func (s *SQLite) ApplyUpdates(ctx context.Context, updates []task.Update) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE tasks SET start_date = ?, end_date = ?, duration = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var parents []string
	for _, u := range updates {
		if u.Updates.IsEmpty() {
			continue
		}

		current, err := getTask(ctx, tx, u.ID)
		if err != nil {
			return fmt.Errorf("updating task %s: %w", u.ID, err)
		}

		next := current.Apply(u.Updates)
		if next.IsMilestone() {
			next.Duration = 0
		}
		if err := next.Validate(); err != nil {
			return fmt.Errorf("updating task %q: %w", current.Name, err)
		}

		if _, err := stmt.ExecContext(ctx,
			dateutil.Format(next.StartDate),
			dateutil.Format(next.EndDate),
			next.Duration,
			next.ID,
		); err != nil {
			return fmt.Errorf("updating task %s: %w", u.ID, err)
		}

		if next.IsSummary() {
			parents = append(parents, next.ID)
		}
		if next.ParentID != "" {
			parents = append(parents, next.ParentID)
		}
	}

	for _, p := range parents {
		if err := respanChain(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func getTask(ctx context.Context, q queryer, id string) (*task.Task, error) {
	rows, err := q.QueryContext(ctx, selectTask+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}

	return tasks[0], nil
}

// scanTasks reads every row and closes rows.
func scanTasks(rows *sql.Rows) ([]*task.Task, error) {
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		var (
			t         task.Task
			typ       string
			startDate string
			endDate   string
			parentID  sql.NullString
			createdAt string
		)

		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&typ,
			&startDate,
			&endDate,
			&t.Duration,
			&parentID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		var err error
		t.Type = task.Type(typ)
		t.ParentID = parentID.String
		if t.StartDate, err = parseDate(startDate); err != nil {
			return nil, fmt.Errorf("parsing start date: %w", err)
		}
		if t.EndDate, err = parseDate(endDate); err != nil {
			return nil, fmt.Errorf("parsing end date: %w", err)
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// loadDependencies returns predecessor IDs keyed by task ID.
// An empty id loads the links of every task.
func loadDependencies(ctx context.Context, q queryer, id string) (map[string][]string, error) {
	query := `SELECT task_id, depends_on FROM task_dependencies`
	var args []any
	if id != "" {
		query += ` WHERE task_id = ?`
		args = append(args, id)
	}
	query += ` ORDER BY task_id, depends_on`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying dependencies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	deps := make(map[string][]string)
	for rows.Next() {
		var taskID, dependsOn string
		if err := rows.Scan(&taskID, &dependsOn); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		deps[taskID] = append(deps[taskID], dependsOn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}

	return deps, nil
}

func insertDependencies(ctx context.Context, tx *sql.Tx, taskID string, deps []string) error {
	for _, dep := range deps {
		if _, err := getTask(ctx, tx, dep); err != nil {
			return fmt.Errorf("dependency: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO task_dependencies (task_id, depends_on) VALUES (?, ?)`,
			taskID, dep,
		); err != nil {
			return fmt.Errorf("inserting dependency: %w", err)
		}
	}
	return nil
}

// respanChain sets each summary from id upwards to the span of its
// children. Childless summaries keep their dates.
func respanChain(ctx context.Context, q queryer, id string) error {
	seen := make(map[string]bool)
	for id != "" && !seen[id] {
		seen[id] = true

		summary, err := getTask(ctx, q, id)
		if err != nil {
			return fmt.Errorf("re-spanning summary: %w", err)
		}
		if !summary.IsSummary() {
			return nil
		}

		var minStart, maxEnd sql.NullString
		err = q.QueryRowContext(ctx,
			`SELECT MIN(start_date), MAX(end_date) FROM tasks WHERE parent_id = ?`, id,
		).Scan(&minStart, &maxEnd)
		if err != nil {
			return fmt.Errorf("querying children span: %w", err)
		}

		if minStart.Valid && maxEnd.Valid {
			start, err := parseDate(minStart.String)
			if err != nil {
				return fmt.Errorf("parsing children start: %w", err)
			}
			end, err := parseDate(maxEnd.String)
			if err != nil {
				return fmt.Errorf("parsing children end: %w", err)
			}

			if _, err := q.ExecContext(ctx,
				`UPDATE tasks SET start_date = ?, end_date = ?, duration = ? WHERE id = ?`,
				dateutil.Format(start),
				dateutil.Format(end),
				dateutil.CalculateDuration(start, end),
				id,
			); err != nil {
				return fmt.Errorf("updating summary %s: %w", id, err)
			}
		}

		id = summary.ParentID
	}
	return nil
}

// parseDate parses a stored date.
// Full timestamps are accepted for databases written by other tools; the
// time of day is dropped.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateutil.Layout, s); err == nil {
		return t, nil
	}

	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return dateutil.TruncateToDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ task.Repository = (*SQLite)(nil)
