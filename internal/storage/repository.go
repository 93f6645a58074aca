package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	ReplaceSubtasks(ctx context.Context, taskID string, subs []Subtask) error
	ListSubtasks(ctx context.Context, taskID string) ([]Subtask, error)

	CreateTag(ctx context.Context, in Tag) error
	GetTag(ctx context.Context, id string) (Tag, error)
	UpdateTag(ctx context.Context, in Tag) error
	DeleteTag(ctx context.Context, id string) error
	ListTags(ctx context.Context, filter TagListFilter) ([]Tag, error)

	ReplaceFocus(ctx context.Context, entries []FocusEntry) error
	ListFocus(ctx context.Context) ([]FocusEntry, error)

	LoadSnapshot(ctx context.Context) (Snapshot, error)
}
