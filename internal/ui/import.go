package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/db"
	"github.com/javiermolinar/gantt/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import tasks from another database",
		Long: `Import all tasks from another gantt database into the current one.

Tasks get new IDs; parents and dependencies are linked to the imported
copies.

Example:
  gantt import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			count, err := importTasks(context.Background(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", count, sourcePath)
			return nil
		},
	}

	return cmd
}

// importTasks copies every task of the database at sourcePath into dest.
// A task is created once its parent and predecessors exist in dest.
func importTasks(ctx context.Context, dest task.Repository, sourcePath string) (int, error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	tasks, err := sourceRepo.ListTasks(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing source tasks: %w", err)
	}
	source := task.NewMap(tasks)
	pending, _ := task.Outline(tasks)

	idMap := make(map[string]string, len(tasks))
	ready := func(id string) bool {
		if _, inSource := source[id]; !inSource {
			return true
		}
		_, done := idMap[id]
		return done
	}

	imported := 0
	for len(pending) > 0 {
		var blocked []*task.Task
		for _, sourceTask := range pending {
			if !ready(sourceTask.ParentID) || !allReady(sourceTask.Dependencies, ready) {
				blocked = append(blocked, sourceTask)
				continue
			}

			newTask := &task.Task{
				Name:      sourceTask.Name,
				Type:      sourceTask.Type,
				StartDate: sourceTask.StartDate,
				EndDate:   sourceTask.EndDate,
				Duration:  sourceTask.Duration,
				ParentID:  idMap[sourceTask.ParentID],
				CreatedAt: sourceTask.CreatedAt,
			}
			for _, dep := range sourceTask.Dependencies {
				if newID, ok := idMap[dep]; ok {
					newTask.Dependencies = append(newTask.Dependencies, newID)
				}
			}

			if err := dest.CreateTask(ctx, newTask); err != nil {
				return imported, fmt.Errorf("importing task %q: %w", sourceTask.Name, err)
			}

			idMap[sourceTask.ID] = newTask.ID
			imported++
		}

		if len(blocked) == len(pending) {
			return imported, fmt.Errorf("%d tasks have circular parents or dependencies", len(blocked))
		}
		pending = blocked
	}

	return imported, nil
}

func allReady(ids []string, ready func(string) bool) bool {
	for _, id := range ids {
		if !ready(id) {
			return false
		}
	}
	return true
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
