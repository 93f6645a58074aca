package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/focusd/internal/engine"
)

// Writer is the persistence collaborator's write side: it consumes the
// engine's mutation events and applies them to a repository.
type Writer struct {
	repo Repository
}

func NewWriter(repo Repository) *Writer {
	return &Writer{repo: repo}
}

func (w *Writer) Apply(ctx context.Context, m engine.Mutation) error {
	switch m.Kind {
	case engine.MutationCreate:
		row, subs := TaskRecord(m.Task)
		if err := w.repo.CreateTask(ctx, row); err != nil {
			return fmt.Errorf("persist create %s: %w", m.ID, err)
		}
		if len(subs) > 0 {
			if err := w.repo.ReplaceSubtasks(ctx, m.ID, subs); err != nil {
				return fmt.Errorf("persist subtasks %s: %w", m.ID, err)
			}
		}
		return nil
	case engine.MutationUpdate:
		row, subs := TaskRecord(m.Task)
		if err := w.repo.UpdateTask(ctx, row); err != nil {
			return fmt.Errorf("persist update %s: %w", m.ID, err)
		}
		if err := w.repo.ReplaceSubtasks(ctx, m.ID, subs); err != nil {
			return fmt.Errorf("persist subtasks %s: %w", m.ID, err)
		}
		return nil
	case engine.MutationDelete:
		// subtask and focus rows cascade through foreign keys
		if err := w.repo.DeleteTask(ctx, m.ID); err != nil {
			return fmt.Errorf("persist delete %s: %w", m.ID, err)
		}
		return nil
	case engine.MutationTagUpsert:
		err := w.repo.UpdateTag(ctx, TagRecord(m.Tag))
		if errors.Is(err, ErrNotFound) {
			err = w.repo.CreateTag(ctx, TagRecord(m.Tag))
		}
		if err != nil {
			return fmt.Errorf("persist tag %s: %w", m.ID, err)
		}
		return nil
	case engine.MutationTagRemove:
		if err := w.repo.DeleteTag(ctx, m.ID); err != nil {
			return fmt.Errorf("persist tag removal %s: %w", m.ID, err)
		}
		return nil
	default:
		return fmt.Errorf("storage: unknown mutation kind %q", m.Kind)
	}
}

// SaveFocus persists the focus queue ordering wholesale.
func (w *Writer) SaveFocus(ctx context.Context, ids []string) error {
	if err := w.repo.ReplaceFocus(ctx, FocusRecord(ids)); err != nil {
		return fmt.Errorf("persist focus queue: %w", err)
	}
	return nil
}
