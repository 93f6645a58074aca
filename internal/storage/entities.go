package storage

import "time"

type Task struct {
	ID         string
	Name       string
	TagID      string
	Date       time.Time
	Complete   bool
	SortOrder  int
	AssigneeID string
	CreatedAt  time.Time
}

type Subtask struct {
	ID       string
	TaskID   string
	Name     string
	Complete bool
	Position int
}

type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}

// FocusEntry persists one slot of the user-ordered focus queue.
type FocusEntry struct {
	TaskID   string
	Position int
}

type TaskListFilter struct {
	TagID  string
	Limit  int
	Offset int
}

type TagListFilter struct {
	Limit  int
	Offset int
}

// Snapshot is everything needed to seed the in-memory engine on startup.
type Snapshot struct {
	Tasks    []Task
	Subtasks []Subtask
	Tags     []Tag
	Focus    []FocusEntry
}
