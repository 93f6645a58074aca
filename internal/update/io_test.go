package update

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// stubRepo satisfies storage.Repository without touching a database so save
// scheduling can be observed in isolation.
type stubRepo struct{}

func (stubRepo) CreateTask(context.Context, storage.Task) error { return nil }
func (stubRepo) GetTask(context.Context, string) (storage.Task, error) {
	return storage.Task{}, storage.ErrNotFound
}
func (stubRepo) UpdateTask(context.Context, storage.Task) error { return nil }
func (stubRepo) DeleteTask(context.Context, string) error       { return nil }
func (stubRepo) ListTasks(context.Context, storage.TaskListFilter) ([]storage.Task, error) {
	return nil, nil
}
func (stubRepo) ReplaceSubtasks(context.Context, string, []storage.Subtask) error { return nil }
func (stubRepo) ListSubtasks(context.Context, string) ([]storage.Subtask, error) {
	return nil, nil
}
func (stubRepo) CreateTag(context.Context, storage.Tag) error { return nil }
func (stubRepo) GetTag(context.Context, string) (storage.Tag, error) {
	return storage.Tag{}, storage.ErrNotFound
}
func (stubRepo) UpdateTag(context.Context, storage.Tag) error { return nil }
func (stubRepo) DeleteTag(context.Context, string) error      { return nil }
func (stubRepo) ListTags(context.Context, storage.TagListFilter) ([]storage.Tag, error) {
	return nil, nil
}
func (stubRepo) ReplaceFocus(context.Context, []storage.FocusEntry) error { return nil }
func (stubRepo) ListFocus(context.Context) ([]storage.FocusEntry, error)  { return nil, nil }
func (stubRepo) LoadSnapshot(context.Context) (storage.Snapshot, error) {
	return storage.Snapshot{}, nil
}

// A mutation arriving while a save batch is still in flight must not start a
// second concurrent save. It stays journaled until the in-flight batch
// completes, then a single follow-up flushes everything that accumulated.
func TestOverlappingSavesRunOneAtATime(t *testing.T) {
	m := newTestModel()
	m.Writer = storage.NewWriter(stubRepo{})

	var cmd tea.Cmd
	m, cmd = m.addTask("first", model.Day(testNow), false)
	if cmd == nil {
		t.Fatal("expected save dispatched for first mutation")
	}
	if !m.saving {
		t.Fatal("expected save in flight")
	}
	firstSeq := m.io.saveSeq

	m, cmd = m.addTask("second", model.Day(testNow), false)
	if cmd != nil {
		t.Fatal("expected second save deferred while first in flight")
	}
	if !m.io.saveQueued {
		t.Fatal("expected follow-up save queued")
	}
	if len(m.io.pending) != 1 {
		t.Fatalf("expected second mutation journaled, got %d entries", len(m.io.pending))
	}

	m, cmd = m.onSaveDone(SaveDoneMsg{Seq: firstSeq})
	if cmd == nil {
		t.Fatal("expected follow-up save dispatched when first completes")
	}
	if m.io.saveSeq != firstSeq+1 {
		t.Fatalf("expected follow-up seq %d, got %d", firstSeq+1, m.io.saveSeq)
	}
	if len(m.io.pending) != 0 {
		t.Fatalf("expected journal drained, got %d entries", len(m.io.pending))
	}
	if m.io.saveQueued {
		t.Fatal("expected queued flag cleared once follow-up dispatched")
	}

	m, cmd = m.onSaveDone(SaveDoneMsg{Seq: m.io.saveSeq})
	if cmd != nil {
		t.Fatal("expected no further save after follow-up completes")
	}
	if m.saving {
		t.Fatal("expected save cycle finished")
	}
}

// Reordering the focus queue produces no task mutations, only a new queue
// order. Even an empty batch must wait its turn behind an in-flight save so
// the older order cannot land last.
func TestFocusOnlyChangeDefersBehindInFlightSave(t *testing.T) {
	m := newTestModel()
	m.Writer = storage.NewWriter(stubRepo{})

	task, err := m.Store.Create(newCreateInput("queued work"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var cmd tea.Cmd
	m, cmd = m.scheduleSave()
	if cmd == nil {
		t.Fatal("expected first save dispatched")
	}

	if err := m.Store.Pull(task.ID); err != nil {
		t.Fatalf("pull: %v", err)
	}
	m, cmd = m.applyMutation("pulled")
	if cmd != nil {
		t.Fatal("expected focus change deferred while save in flight")
	}
	if !m.io.saveQueued {
		t.Fatal("expected follow-up save queued for focus order")
	}

	m, cmd = m.onSaveDone(SaveDoneMsg{Seq: m.io.saveSeq})
	if cmd == nil {
		t.Fatal("expected queue order flushed after in-flight save completed")
	}
}

// A completion for a superseded save sequence must not clear the in-flight
// state that belongs to a newer save.
func TestStaleSaveCompletionIgnored(t *testing.T) {
	m := newTestModel()
	m.Writer = storage.NewWriter(stubRepo{})
	m.io.saveSeq = 4
	m.saving = true

	m, cmd := m.onSaveDone(SaveDoneMsg{Seq: 3})
	if cmd != nil {
		t.Fatal("expected stale completion to dispatch nothing")
	}
	if !m.saving {
		t.Fatal("expected in-flight flag untouched by stale completion")
	}
}
