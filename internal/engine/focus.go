package engine

import (
	"fmt"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Pull adds a task to the end of the focus queue. Pulling a task that is
// already queued is a no-op. Pulling a nonexistent task is ErrNotFound.
func (s *Store) Pull(id string) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	for _, queued := range s.focus {
		if queued == id {
			return nil
		}
	}
	s.focus = append(s.focus, id)
	return nil
}

// Unfocus removes a task from the focus queue. Removing a task that is not
// queued is a no-op.
func (s *Store) Unfocus(id string) {
	s.dropFocus(id)
}

func (s *Store) dropFocus(id string) {
	for i, queued := range s.focus {
		if queued == id {
			s.focus = append(s.focus[:i], s.focus[i+1:]...)
			return
		}
	}
}

// ReorderFocus moves a queued task to newIndex. An out-of-range index
// saturates to the nearest valid position rather than failing, which keeps
// drag-and-drop edges harmless. Reordering a task that is not queued is a
// no-op.
func (s *Store) ReorderFocus(id string, newIndex int) {
	from := -1
	for i, queued := range s.focus {
		if queued == id {
			from = i
			break
		}
	}
	if from < 0 {
		return
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(s.focus)-1 {
		newIndex = len(s.focus) - 1
	}
	if newIndex == from {
		return
	}
	s.focus = append(s.focus[:from], s.focus[from+1:]...)
	s.focus = append(s.focus[:newIndex], append([]string{id}, s.focus[newIndex:]...)...)
}

// Focused resolves the focus queue to tasks in queue order. Queue membership
// is independent of date and completion; a completed task stays queued until
// explicitly removed so the progress tracker can observe it.
func (s *Store) Focused() []model.Task {
	out := make([]model.Task, 0, len(s.focus))
	for _, id := range s.focus {
		task, ok := s.byID[id]
		if !ok {
			violated("focus queue references missing task %q", id)
		}
		out = append(out, task.Clone())
	}
	return out
}

// FocusIDs returns the raw queue order, for persistence.
func (s *Store) FocusIDs() []string {
	out := make([]string, len(s.focus))
	copy(out, s.focus)
	return out
}

// InFocus reports whether a task is queued.
func (s *Store) InFocus(id string) bool {
	for _, queued := range s.focus {
		if queued == id {
			return true
		}
	}
	return false
}
