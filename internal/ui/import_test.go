package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/gantt/internal/db"
	"github.com/javiermolinar/gantt/internal/task"
)

func TestImportTasks(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")
	destPath := filepath.Join(dir, "dest.db")

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("creating source repo: %v", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	create := func(tsk *task.Task) *task.Task {
		t.Helper()
		tsk.Duration = tsk.CalendarDays()
		if err := sourceRepo.CreateTask(ctx, tsk); err != nil {
			t.Fatalf("CreateTask(%s) failed: %v", tsk.Name, err)
		}
		return tsk
	}

	phase := create(&task.Task{Name: "Phase", Type: task.TypeSummary, StartDate: day(6), EndDate: day(17)})
	design := create(&task.Task{Name: "Design", Type: task.TypeTask, StartDate: day(6), EndDate: day(10), ParentID: phase.ID})
	build := create(&task.Task{Name: "Build", Type: task.TypeTask, StartDate: day(13), EndDate: day(17), ParentID: phase.ID, Dependencies: []string{design.ID}})
	launch := create(&task.Task{Name: "Launch", Type: task.TypeMilestone, StartDate: day(20), EndDate: day(20), Dependencies: []string{build.ID}})
	// Listed first in chart order but links to a later task.
	create(&task.Task{Name: "Kickoff", Type: task.TypeTask, StartDate: day(2), EndDate: day(3), Dependencies: []string{launch.ID}})

	destRepo, err := db.New(destPath)
	if err != nil {
		t.Fatalf("creating destination repo: %v", err)
	}
	defer func() { _ = destRepo.Close() }()

	count, err := importTasks(ctx, destRepo, sourcePath)
	if err != nil {
		t.Fatalf("importTasks failed: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 imported tasks, got %d", count)
	}

	imported, err := destRepo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(imported) != 5 {
		t.Fatalf("expected 5 tasks in destination, got %d", len(imported))
	}

	byName := make(map[string]*task.Task)
	for _, tsk := range imported {
		byName[tsk.Name] = tsk
	}

	newPhase, newDesign, newBuild := byName["Phase"], byName["Design"], byName["Build"]
	if newPhase == nil || newDesign == nil || newBuild == nil || byName["Launch"] == nil || byName["Kickoff"] == nil {
		t.Fatalf("missing tasks after import: %v", byName)
	}

	if newPhase.ID == phase.ID {
		t.Error("expected imported tasks to get new IDs")
	}
	if newBuild.ParentID != newPhase.ID {
		t.Errorf("Build parent = %q, want imported Phase %q", newBuild.ParentID, newPhase.ID)
	}
	if !newBuild.DependsOn(newDesign.ID) {
		t.Errorf("Build dependencies = %v, want imported Design", newBuild.Dependencies)
	}
	if !byName["Kickoff"].DependsOn(byName["Launch"].ID) {
		t.Errorf("Kickoff dependencies = %v, want imported Launch", byName["Kickoff"].Dependencies)
	}
	if !newPhase.StartDate.Equal(day(6)) || !newPhase.EndDate.Equal(day(17)) {
		t.Errorf("Phase span = %s, want children span", newPhase)
	}
}

func TestResolvePath(t *testing.T) {
	if _, err := resolvePath("  "); err == nil {
		t.Error("expected error for empty path")
	}

	got, err := resolvePath("gantt.db")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("resolvePath returned relative path %q", got)
	}
}
