package engine

import (
	"errors"
	"testing"
)

func TestPullIsIdempotent(t *testing.T) {
	s := newTestStore()
	task, err := s.Create(CreateInput{Name: "Essay"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Pull(task.ID); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if err := s.Pull(task.ID); err != nil {
		t.Fatalf("second pull: %v", err)
	}
	if got := len(s.Focused()); got != 1 {
		t.Fatalf("expected 1 queued task after double pull, got %d", got)
	}
}

func TestPullUnknownTask(t *testing.T) {
	s := newTestStore()
	if err := s.Pull("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestReorderClampsIndex(t *testing.T) {
	s := newTestStore()
	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		task, err := s.Create(CreateInput{Name: name, Focus: true})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, task.ID)
	}

	s.ReorderFocus(ids[0], 99)
	got := s.FocusIDs()
	if got[2] != ids[0] {
		t.Fatalf("expected saturation to last position, got %v", got)
	}

	s.ReorderFocus(ids[0], -5)
	got = s.FocusIDs()
	if got[0] != ids[0] {
		t.Fatalf("expected saturation to first position, got %v", got)
	}

	// unknown id is a no-op, never a failure
	s.ReorderFocus("ghost", 1)
	if len(s.FocusIDs()) != 3 {
		t.Fatal("reorder of unknown id changed the queue")
	}
}

func TestReorderMovesWithinQueue(t *testing.T) {
	s := newTestStore()
	var ids []string
	for _, name := range []string{"a", "b", "c", "d"} {
		task, err := s.Create(CreateInput{Name: name, Focus: true})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, task.ID)
	}
	s.ReorderFocus(ids[3], 1)
	got := s.FocusIDs()
	want := []string{ids[0], ids[3], ids[1], ids[2]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestCompletedTaskStaysQueued(t *testing.T) {
	s := newTestStore()
	task, err := s.Create(CreateInput{Name: "Essay", Focus: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Update(task.ID, Patch{Complete: boolptr(true)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	focused := s.Focused()
	if len(focused) != 1 || !focused[0].Complete {
		t.Fatalf("expected completed task to remain queued, got %+v", focused)
	}
}

func TestUnfocusRemovesEntry(t *testing.T) {
	s := newTestStore()
	task, err := s.Create(CreateInput{Name: "Essay", Focus: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Unfocus(task.ID)
	if len(s.Focused()) != 0 {
		t.Fatal("expected empty queue after unfocus")
	}
	if _, err := s.Get(task.ID); err != nil {
		t.Fatalf("unfocus must not delete the task: %v", err)
	}
	// unfocus of an unqueued task is a no-op
	s.Unfocus(task.ID)
}
