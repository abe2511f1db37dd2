package db

import "fmt"

// migrate runs database migrations.
// Dates are stored as TEXT in YYYY-MM-DD form so the driver never converts
// them to timestamps.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			type        TEXT NOT NULL DEFAULT 'task' CHECK(type IN ('task', 'milestone', 'summary')),
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL,
			duration    INTEGER NOT NULL DEFAULT 0,
			parent_id   TEXT REFERENCES tasks(id),
			created_at  TEXT NOT NULL,
			CHECK(end_date >= start_date)
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_start ON tasks(start_date);
		CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id);

		CREATE TABLE IF NOT EXISTS task_dependencies (
			task_id     TEXT NOT NULL REFERENCES tasks(id),
			depends_on  TEXT NOT NULL REFERENCES tasks(id),
			PRIMARY KEY (task_id, depends_on),
			CHECK(task_id != depends_on)
		);

		CREATE INDEX IF NOT EXISTS idx_dependencies_depends_on ON task_dependencies(depends_on);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
