package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/javiermolinar/gantt/internal/task"
)

type fakeRepo struct {
	task.Repository
	tasks   []*task.Task
	listErr error
	applied []task.Update
	saveErr error
}

func (f *fakeRepo) ListTasks(context.Context) ([]*task.Task, error) {
	return f.tasks, f.listErr
}

func (f *fakeRepo) ApplyUpdates(_ context.Context, updates []task.Update) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.applied = append(f.applied, updates...)
	return nil
}

func TestLoadTasks(t *testing.T) {
	repo := &fakeRepo{tasks: []*task.Task{{ID: "a", Name: "a"}}}

	msg := LoadTasks(repo)()
	loaded, ok := msg.(TasksLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want TasksLoadedMsg", msg)
	}
	if len(loaded.Tasks) != 1 {
		t.Errorf("got %d tasks, want 1", len(loaded.Tasks))
	}
}

func TestLoadTasks_Error(t *testing.T) {
	boom := errors.New("boom")
	msg := LoadTasks(&fakeRepo{listErr: boom})()

	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, boom) {
		t.Errorf("got %v, want wrapped boom", errMsg.Err)
	}
}

func TestApplyUpdates(t *testing.T) {
	repo := &fakeRepo{}
	updates := []task.Update{{ID: "a"}, {ID: "b"}}

	msg := ApplyUpdates(repo, updates)()
	applied, ok := msg.(UpdatesAppliedMsg)
	if !ok {
		t.Fatalf("got %T, want UpdatesAppliedMsg", msg)
	}
	if applied.Count != 2 || len(repo.applied) != 2 {
		t.Errorf("applied %d/%d, want 2", applied.Count, len(repo.applied))
	}
}

func TestApplyUpdates_Error(t *testing.T) {
	msg := ApplyUpdates(&fakeRepo{saveErr: task.ErrTaskNotFound}, []task.Update{{ID: "a"}})()

	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", errMsg.Err)
	}
}
